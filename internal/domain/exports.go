package domain

import (
	interfaces "ledgerchat/internal/domain/interfaces"
	types "ledgerchat/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Address         = types.Address
	ConversationID  = types.ConversationID
	ContentID       = types.ContentID
	Fingerprint     = types.Fingerprint
	EventKind       = types.EventKind
	Event           = types.Event
	KeyPair         = types.KeyPair
	Contact         = types.Contact
	Status          = types.Status
	Reaction        = types.Reaction
	Message         = types.Message
	MessageRecord   = types.MessageRecord
	ContactRecord   = types.ContactRecord
	ReactionRecord  = types.ReactionRecord
	StatusRecord    = types.StatusRecord
	SupersedeKind   = types.SupersedeKind
	SupersedeRecord = types.SupersedeRecord
	PublicKeyRecord = types.PublicKeyRecord
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Ledger          = interfaces.Ledger
	Subscription    = interfaces.Subscription
	BlobStore       = interfaces.BlobStore
	Signer          = interfaces.Signer
	KeyStore        = interfaces.KeyStore
	MembershipStore = interfaces.MembershipStore
	OutboxStore     = interfaces.OutboxStore
	KeyVault        = interfaces.KeyVault
	Directory       = interfaces.Directory
	Messenger       = interfaces.Messenger
	SyncEngine      = interfaces.SyncEngine
)

// Constant re-exports.
const (
	StatusSent      = types.StatusSent
	StatusDelivered = types.StatusDelivered
	StatusRead      = types.StatusRead

	EventMessage   = types.EventMessage
	EventReaction  = types.EventReaction
	EventStatus    = types.EventStatus
	EventSupersede = types.EventSupersede
	EventContact   = types.EventContact
	EventPublicKey = types.EventPublicKey

	SupersedeEdit   = types.SupersedeEdit
	SupersedeDelete = types.SupersedeDelete
)

// Sentinel error re-exports.
var (
	ErrKeyGeneration     = types.ErrKeyGeneration
	ErrEncryption        = types.ErrEncryption
	ErrDecryption        = types.ErrDecryption
	ErrLedgerUnavailable = types.ErrLedgerUnavailable
	ErrUnknownRecipient  = types.ErrUnknownRecipient
	ErrNotFound          = types.ErrNotFound
)
