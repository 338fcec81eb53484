package types

import "strings"

// Address is an account identifier as supplied by the external signer.
// Addresses are hex strings and compare case-insensitively.
type Address string

// String returns the string form of the address.
func (a Address) String() string { return string(a) }

// Equal reports whether two addresses identify the same account.
func (a Address) Equal(b Address) bool { return strings.EqualFold(string(a), string(b)) }

// Canonical returns the lowercase form used for keying and derivation.
func (a Address) Canonical() string { return strings.ToLower(string(a)) }

// Short returns an abbreviated form for display and logs, e.g. 0x1234…abcd.
func (a Address) Short() string {
	s := string(a)
	if len(s) <= 10 {
		return s
	}
	return s[:6] + "…" + s[len(s)-4:]
}

// ConversationID identifies the message history between exactly two accounts.
// It is derived from the unordered address pair, so both parties resolve to
// the same identifier.
type ConversationID string

// String returns the string form of the conversation identifier.
func (id ConversationID) String() string { return string(id) }

// ContentID identifies content in the blob store.
type ContentID string

// String returns the string form of the content identifier.
func (id ContentID) String() string { return string(id) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// EventKind classifies ledger events for subscriptions.
type EventKind string

// Ledger event kinds.
const (
	EventMessage   EventKind = "message"
	EventReaction  EventKind = "reaction"
	EventStatus    EventKind = "status"
	EventSupersede EventKind = "supersede"
	EventContact   EventKind = "contact"
	EventPublicKey EventKind = "public_key"
)

// Event is the notification a ledger subscription delivers. Conversation
// fields are empty for events that are not scoped to a conversation.
type Event struct {
	Kind           EventKind      `json:"kind"`
	ConversationID ConversationID `json:"conversation_id,omitempty"`
	Sender         Address        `json:"sender,omitempty"`
	Recipient      Address        `json:"recipient,omitempty"`
	Address        Address        `json:"address,omitempty"`
}
