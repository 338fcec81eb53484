package interfaces

import (
	"context"
	"time"

	domaintypes "ledgerchat/internal/domain/types"
)

// KeyVault creates and retrieves the account's asymmetric key pair.
// Publishing the public key to the ledger is the caller's responsibility,
// which keeps the vault testable without a ledger.
type KeyVault interface {
	// EnsureKeyPair returns the stored pair for the account, generating and
	// persisting one first if absent. Concurrent calls for the same account
	// yield the same pair.
	EnsureKeyPair(ctx context.Context, account domaintypes.Address) (domaintypes.KeyPair, error)
	// KeyPair returns the stored pair without generating.
	KeyPair(ctx context.Context, account domaintypes.Address) (domaintypes.KeyPair, bool, error)
}

// Directory manages the account's address book: ledger-sourced metadata
// plus the client-local membership list.
type Directory interface {
	AddContact(ctx context.Context, owner, address domaintypes.Address, name string) (domaintypes.Contact, error)
	ToggleBlock(ctx context.Context, owner, address domaintypes.Address) (domaintypes.Contact, error)
	RemoveContact(ctx context.Context, owner, address domaintypes.Address) error
	// Get resolves a contact fully from ledger metadata, whether or not a
	// local membership entry exists.
	Get(ctx context.Context, owner, address domaintypes.Address) (domaintypes.Contact, error)
	// List reconciles the membership list against ledger metadata.
	List(ctx context.Context, owner domaintypes.Address) ([]domaintypes.Contact, error)
}

// Messenger prepares and appends outbound conversation events.
type Messenger interface {
	// Connect ensures the account's key pair exists and publishes the
	// public key, returning its fingerprint.
	Connect(ctx context.Context, account domaintypes.Address) (domaintypes.Fingerprint, error)
	// Send encrypts text for the recipient's published key and appends it.
	Send(ctx context.Context, from, to domaintypes.Address, text string) (domaintypes.Message, error)
	// SendFile uploads the bytes to the blob store and appends a file
	// message carrying the content reference.
	SendFile(ctx context.Context, from, to domaintypes.Address, name string, data []byte) (domaintypes.Message, error)
	// AckDelivered and MarkRead append status acknowledgments; both are
	// valid only from the recipient's side of the message.
	AckDelivered(ctx context.Context, me domaintypes.Address, id domaintypes.ConversationID, messageID string) error
	MarkRead(ctx context.Context, me domaintypes.Address, id domaintypes.ConversationID, messageID string) error
	React(ctx context.Context, me domaintypes.Address, id domaintypes.ConversationID, messageID, emoji string) error
	Edit(ctx context.Context, me, to domaintypes.Address, id domaintypes.ConversationID, messageID, newText string) error
	Delete(ctx context.Context, me domaintypes.Address, id domaintypes.ConversationID, messageID string) error
}

// SyncEngine reconciles the local conversation view against the ledger.
type SyncEngine interface {
	// LoadConversation returns the conversation in ledger insertion order,
	// with per-message decryption, statuses, reactions, and supersede
	// markers folded in. A single undecryptable message degrades only
	// itself, never the load.
	LoadConversation(ctx context.Context, account, contact domaintypes.Address) ([]domaintypes.Message, error)
	// Subscribe registers onChange for ledger events touching the pair in
	// either direction. Each match triggers a full reload whose snapshot is
	// delivered only while the subscription is still active.
	Subscribe(ctx context.Context, account, contact domaintypes.Address, onChange func([]domaintypes.Message)) (Subscription, error)
	// Online derives presence from the contact's last ledger activity.
	// A heuristic, not a liveness protocol.
	Online(c domaintypes.Contact, now time.Time) bool
}
