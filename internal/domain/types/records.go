package types

// MessageRecord is the message entry as appended to and read from the
// ledger. Payload is the base64 ciphertext, or a cleartext blob reference
// when IsFile is set. ID is assigned by the ledger at append time and is
// unique within the conversation.
type MessageRecord struct {
	ID             string         `json:"id"`
	ConversationID ConversationID `json:"conversation_id"`
	Sender         Address        `json:"sender"`
	Recipient      Address        `json:"recipient"`
	Payload        string         `json:"payload"`
	Timestamp      int64          `json:"timestamp"`
	IsFile         bool           `json:"is_file"`
}

// ContactRecord is contact metadata under an owner's ledger namespace.
type ContactRecord struct {
	Owner     Address `json:"owner"`
	Address   Address `json:"address"`
	Name      string  `json:"name"`
	PublicKey string  `json:"public_key,omitempty"`
	Blocked   bool    `json:"blocked"`
	LastSeen  int64   `json:"last_seen,omitempty"`
}

// ReactionRecord attaches an emoji reaction to a message.
type ReactionRecord struct {
	ConversationID ConversationID `json:"conversation_id"`
	MessageID      string         `json:"message_id"`
	Emoji          string         `json:"emoji"`
	User           Address        `json:"user"`
	Timestamp      int64          `json:"timestamp"`
}

// StatusRecord is a delivery or read acknowledgment appended by the
// recipient's client.
type StatusRecord struct {
	ConversationID ConversationID `json:"conversation_id"`
	MessageID      string         `json:"message_id"`
	Status         Status         `json:"status"`
	Actor          Address        `json:"actor"`
	Timestamp      int64          `json:"timestamp"`
}

// SupersedeKind distinguishes edit from delete markers.
type SupersedeKind string

// Supersede kinds.
const (
	SupersedeEdit   SupersedeKind = "edit"
	SupersedeDelete SupersedeKind = "delete"
)

// SupersedeRecord marks an earlier message as edited or deleted. The ledger
// has no mutable-record primitive, so edits and deletes are new events that
// supersede the original; the original payload stays on the ledger for
// audit. Payload carries the replacement ciphertext for edits.
type SupersedeRecord struct {
	ConversationID ConversationID `json:"conversation_id"`
	MessageID      string         `json:"message_id"`
	Kind           SupersedeKind  `json:"kind"`
	Payload        string         `json:"payload,omitempty"`
	Actor          Address        `json:"actor"`
	Timestamp      int64          `json:"timestamp"`
}

// PublicKeyRecord publishes an account's encryption public key.
type PublicKeyRecord struct {
	Address   Address `json:"address"`
	PublicKey string  `json:"public_key"`
}
