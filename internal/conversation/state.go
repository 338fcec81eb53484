package conversation

import (
	"ledgerchat/internal/domain"
)

// State is the in-memory view of one conversation: the ordered message list
// plus status, reaction, and supersede aggregates. Records must be applied
// in ledger insertion order for messages; status, reaction, and supersede
// events may arrive in any order or more than once; re-application is a
// no-op and status never regresses.
//
// State is not safe for concurrent use; the sync engine owns at most one
// in-flight build per conversation.
type State struct {
	id       domain.ConversationID
	messages []domain.Message
	index    map[string]int // message id -> position
}

// New returns an empty conversation state.
func New(id domain.ConversationID) *State {
	return &State{id: id, index: make(map[string]int)}
}

// Append adds the next ledger message record with its recovered content.
// Re-appending an id already present is a no-op, which makes replayed
// ledger reads safe.
func (s *State) Append(rec domain.MessageRecord, content string, undecryptable bool) {
	if _, dup := s.index[rec.ID]; dup {
		return
	}
	s.index[rec.ID] = len(s.messages)
	s.messages = append(s.messages, domain.Message{
		ID:             rec.ID,
		ConversationID: rec.ConversationID,
		Sender:         rec.Sender,
		Recipient:      rec.Recipient,
		Content:        content,
		Ciphertext:     rec.Payload,
		Timestamp:      rec.Timestamp,
		IsFile:         rec.IsFile,
		Status:         domain.StatusSent,
		Undecryptable:  undecryptable,
	})
}

// ApplyStatus advances a message's status. Only the recipient's
// acknowledgment counts (a client cannot advance its own sent messages),
// and status is monotonic: out-of-order or duplicate events are no-ops.
func (s *State) ApplyStatus(rec domain.StatusRecord) {
	i, ok := s.index[rec.MessageID]
	if !ok {
		return
	}
	m := &s.messages[i]
	if !rec.Actor.Equal(m.Recipient) {
		return
	}
	if rec.Status > m.Status {
		m.Status = rec.Status
	}
}

// ApplyReaction upserts a reaction keyed by (emoji, user): re-applying
// replaces the existing entry rather than duplicating it.
func (s *State) ApplyReaction(rec domain.ReactionRecord) {
	i, ok := s.index[rec.MessageID]
	if !ok {
		return
	}
	m := &s.messages[i]
	for j, r := range m.Reactions {
		if r.Emoji == rec.Emoji && r.User.Equal(rec.User) {
			m.Reactions[j] = domain.Reaction{Emoji: rec.Emoji, User: rec.User}
			return
		}
	}
	m.Reactions = append(m.Reactions, domain.Reaction{Emoji: rec.Emoji, User: rec.User})
}

// ApplySupersede marks a message edited or deleted. Only the original
// sender may supersede its message. The original ciphertext stays on the
// message for audit; content carries the decrypted replacement for edits.
func (s *State) ApplySupersede(rec domain.SupersedeRecord, content string, undecryptable bool) {
	i, ok := s.index[rec.MessageID]
	if !ok {
		return
	}
	m := &s.messages[i]
	if !rec.Actor.Equal(m.Sender) {
		return
	}
	switch rec.Kind {
	case domain.SupersedeDelete:
		m.Deleted = true
	case domain.SupersedeEdit:
		m.Edited = true
		m.Content = content
		m.Undecryptable = undecryptable
	}
}

// Messages returns a snapshot of the conversation in insertion order.
func (s *State) Messages() []domain.Message {
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	for i := range out {
		out[i].Reactions = append([]domain.Reaction(nil), s.messages[i].Reactions...)
	}
	return out
}

// Len returns the number of messages applied so far.
func (s *State) Len() int { return len(s.messages) }
