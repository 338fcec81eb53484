package interfaces

import (
	"context"

	domaintypes "ledgerchat/internal/domain/types"
)

// Subscription is a handle for a registered ledger event callback. Cancel is
// idempotent; after it returns no further callbacks are delivered.
type Subscription interface {
	Cancel()
}

// Ledger is the append-only record store acting as source of truth for
// messages, contacts, reactions, and published keys. Consumed, not
// implemented here: the contract side assigns message IDs and preserves
// insertion order, which is the only ordering guarantee in the system.
//
// Failures surface as errors wrapping ErrLedgerUnavailable and are never
// retried inside this layer.
type Ledger interface {
	// AppendMessage appends a message record and returns it with the
	// ledger-assigned ID and timestamp filled in.
	AppendMessage(ctx context.Context, rec domaintypes.MessageRecord) (domaintypes.MessageRecord, error)
	// Messages returns all records of a conversation in insertion order.
	Messages(ctx context.Context, id domaintypes.ConversationID) ([]domaintypes.MessageRecord, error)

	AppendReaction(ctx context.Context, rec domaintypes.ReactionRecord) error
	Reactions(ctx context.Context, id domaintypes.ConversationID) ([]domaintypes.ReactionRecord, error)

	AppendStatus(ctx context.Context, rec domaintypes.StatusRecord) error
	Statuses(ctx context.Context, id domaintypes.ConversationID) ([]domaintypes.StatusRecord, error)

	AppendSupersede(ctx context.Context, rec domaintypes.SupersedeRecord) error
	Supersedes(ctx context.Context, id domaintypes.ConversationID) ([]domaintypes.SupersedeRecord, error)

	// PutContact writes contact metadata under the owner's namespace.
	PutContact(ctx context.Context, rec domaintypes.ContactRecord) error
	// Contact resolves contact metadata; ok is false when the owner never
	// wrote a record for that address.
	Contact(ctx context.Context, owner, address domaintypes.Address) (domaintypes.ContactRecord, bool, error)

	// PublishKey publishes (or replaces) an account's public key.
	PublishKey(ctx context.Context, rec domaintypes.PublicKeyRecord) error
	// PublicKey returns the most recently published key for an address.
	PublicKey(ctx context.Context, address domaintypes.Address) (string, bool, error)

	// Subscribe registers a callback for events of one kind.
	Subscribe(kind domaintypes.EventKind, fn func(domaintypes.Event)) (Subscription, error)
}

// BlobStore is content-addressed storage for file and voice attachments.
// The returned identifier is embedded as message content instead of the
// bytes themselves.
type BlobStore interface {
	Put(ctx context.Context, name string, data []byte) (domaintypes.ContentID, error)
}

// Signer yields the local account identity. Authorizing ledger writes is
// the signer's concern; this layer only prepares payloads.
type Signer interface {
	Account(ctx context.Context) (domaintypes.Address, error)
}
