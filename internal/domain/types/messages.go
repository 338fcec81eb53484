package types

// Status is a message's delivery state. It only ever advances:
// SENT -> DELIVERED -> READ.
type Status int

// Message statuses, in advancement order.
const (
	StatusSent Status = iota
	StatusDelivered
	StatusRead
)

// String returns the status name as stored on the ledger.
func (s Status) String() string {
	switch s {
	case StatusDelivered:
		return "DELIVERED"
	case StatusRead:
		return "READ"
	default:
		return "SENT"
	}
}

// Reaction is a single emoji reaction by a user. A message holds at most one
// reaction per (emoji, user) pair.
type Reaction struct {
	Emoji string  `json:"emoji"`
	User  Address `json:"user"`
}

// Message is the client-side view of one conversation entry after decryption
// and event folding. Ciphertext is kept as stored on the ledger even when
// Content could be recovered, so superseded or undecryptable messages remain
// auditable.
type Message struct {
	ID             string         `json:"id"`
	ConversationID ConversationID `json:"conversation_id"`
	Sender         Address        `json:"sender"`
	Recipient      Address        `json:"recipient"`
	Content        string         `json:"content"`
	Ciphertext     string         `json:"ciphertext"`
	Timestamp      int64          `json:"timestamp"`
	IsFile         bool           `json:"is_file"`
	Status         Status         `json:"status"`
	Reactions      []Reaction     `json:"reactions,omitempty"`
	Undecryptable  bool           `json:"undecryptable,omitempty"`
	Edited         bool           `json:"edited,omitempty"`
	Deleted        bool           `json:"deleted,omitempty"`
}
