package interfaces

import (
	"context"

	domaintypes "ledgerchat/internal/domain/types"
)

// KeyStore persists the local account key pairs, keyed by account.
type KeyStore interface {
	SaveKeyPair(ctx context.Context, account domaintypes.Address, kp domaintypes.KeyPair) error
	LoadKeyPair(ctx context.Context, account domaintypes.Address) (domaintypes.KeyPair, bool, error)
}

// MembershipStore keeps the client-local contact membership list per
// account. It is an index, not the source of truth: the ledger's contact
// metadata survives a cleared membership list.
type MembershipStore interface {
	// AppendMember adds an address to the owner's list; re-adding is a no-op.
	AppendMember(ctx context.Context, owner, address domaintypes.Address) error
	// Members returns the owner's list in insertion order.
	Members(ctx context.Context, owner domaintypes.Address) ([]domaintypes.Address, error)
	RemoveMember(ctx context.Context, owner, address domaintypes.Address) error
}

// OutboxStore retains sent plaintexts locally. Messages are encrypted for
// the recipient's key only, so the sender's own history can be rendered
// only from this store.
type OutboxStore interface {
	SavePlaintext(ctx context.Context, id domaintypes.ConversationID, messageID, plaintext string) error
	Plaintext(ctx context.Context, id domaintypes.ConversationID, messageID string) (string, bool, error)
}
