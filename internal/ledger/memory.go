package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"ledgerchat/internal/domain"
)

// Memory is an in-process Ledger used by tests and by the dev ledger
// daemon. It mirrors the contract's observable behavior: append-only
// per-conversation logs, insertion-order reads, last-writer-wins metadata,
// per-sender activity timestamps, and an event journal.
type Memory struct {
	mu         sync.RWMutex
	closed     bool
	messages   map[domain.ConversationID][]domain.MessageRecord
	reactions  map[domain.ConversationID][]domain.ReactionRecord
	statuses   map[domain.ConversationID][]domain.StatusRecord
	supersedes map[domain.ConversationID][]domain.SupersedeRecord
	contacts   map[string]map[string]domain.ContactRecord
	keys       map[string]string
	lastSeen   map[string]int64
	subs       map[domain.EventKind]map[string]func(domain.Event)
	journal    []domain.Event
}

// NewMemory returns an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{
		messages:   make(map[domain.ConversationID][]domain.MessageRecord),
		reactions:  make(map[domain.ConversationID][]domain.ReactionRecord),
		statuses:   make(map[domain.ConversationID][]domain.StatusRecord),
		supersedes: make(map[domain.ConversationID][]domain.SupersedeRecord),
		contacts:   make(map[string]map[string]domain.ContactRecord),
		keys:       make(map[string]string),
		lastSeen:   make(map[string]int64),
		subs:       make(map[domain.EventKind]map[string]func(domain.Event)),
	}
}

// Close makes every subsequent operation fail with ErrLedgerUnavailable.
// Useful for exercising caller-side failure handling.
func (m *Memory) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}

func (m *Memory) check() error {
	if m.closed {
		return fmt.Errorf("%w: ledger closed", domain.ErrLedgerUnavailable)
	}
	return nil
}

// AppendMessage appends the record, assigning a stable id and timestamp.
func (m *Memory) AppendMessage(ctx context.Context, rec domain.MessageRecord) (domain.MessageRecord, error) {
	m.mu.Lock()
	if err := m.check(); err != nil {
		m.mu.Unlock()
		return domain.MessageRecord{}, err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp == 0 {
		rec.Timestamp = time.Now().Unix()
	}
	m.messages[rec.ConversationID] = append(m.messages[rec.ConversationID], rec)
	m.touch(rec.Sender)
	fns := m.emit(domain.Event{
		Kind:           domain.EventMessage,
		ConversationID: rec.ConversationID,
		Sender:         rec.Sender,
		Recipient:      rec.Recipient,
	})
	m.mu.Unlock()
	deliver(fns)
	return rec, nil
}

// Messages returns the conversation's records in insertion order.
func (m *Memory) Messages(ctx context.Context, id domain.ConversationID) ([]domain.MessageRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.check(); err != nil {
		return nil, err
	}
	return append([]domain.MessageRecord(nil), m.messages[id]...), nil
}

// AppendReaction appends a reaction record.
func (m *Memory) AppendReaction(ctx context.Context, rec domain.ReactionRecord) error {
	m.mu.Lock()
	if err := m.check(); err != nil {
		m.mu.Unlock()
		return err
	}
	if rec.Timestamp == 0 {
		rec.Timestamp = time.Now().Unix()
	}
	m.reactions[rec.ConversationID] = append(m.reactions[rec.ConversationID], rec)
	m.touch(rec.User)
	fns := m.emit(domain.Event{
		Kind:           domain.EventReaction,
		ConversationID: rec.ConversationID,
		Sender:         rec.User,
	})
	m.mu.Unlock()
	deliver(fns)
	return nil
}

// Reactions returns all reaction records for a conversation.
func (m *Memory) Reactions(ctx context.Context, id domain.ConversationID) ([]domain.ReactionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.check(); err != nil {
		return nil, err
	}
	return append([]domain.ReactionRecord(nil), m.reactions[id]...), nil
}

// AppendStatus appends a delivery/read acknowledgment.
func (m *Memory) AppendStatus(ctx context.Context, rec domain.StatusRecord) error {
	m.mu.Lock()
	if err := m.check(); err != nil {
		m.mu.Unlock()
		return err
	}
	if rec.Timestamp == 0 {
		rec.Timestamp = time.Now().Unix()
	}
	m.statuses[rec.ConversationID] = append(m.statuses[rec.ConversationID], rec)
	m.touch(rec.Actor)
	fns := m.emit(domain.Event{
		Kind:           domain.EventStatus,
		ConversationID: rec.ConversationID,
		Sender:         rec.Actor,
	})
	m.mu.Unlock()
	deliver(fns)
	return nil
}

// Statuses returns all status records for a conversation.
func (m *Memory) Statuses(ctx context.Context, id domain.ConversationID) ([]domain.StatusRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.check(); err != nil {
		return nil, err
	}
	return append([]domain.StatusRecord(nil), m.statuses[id]...), nil
}

// AppendSupersede appends an edit/delete marker.
func (m *Memory) AppendSupersede(ctx context.Context, rec domain.SupersedeRecord) error {
	m.mu.Lock()
	if err := m.check(); err != nil {
		m.mu.Unlock()
		return err
	}
	if rec.Timestamp == 0 {
		rec.Timestamp = time.Now().Unix()
	}
	m.supersedes[rec.ConversationID] = append(m.supersedes[rec.ConversationID], rec)
	m.touch(rec.Actor)
	fns := m.emit(domain.Event{
		Kind:           domain.EventSupersede,
		ConversationID: rec.ConversationID,
		Sender:         rec.Actor,
	})
	m.mu.Unlock()
	deliver(fns)
	return nil
}

// Supersedes returns all supersede records for a conversation.
func (m *Memory) Supersedes(ctx context.Context, id domain.ConversationID) ([]domain.SupersedeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.check(); err != nil {
		return nil, err
	}
	return append([]domain.SupersedeRecord(nil), m.supersedes[id]...), nil
}

// PutContact writes contact metadata under the owner's namespace,
// replacing any previous record for that address.
func (m *Memory) PutContact(ctx context.Context, rec domain.ContactRecord) error {
	m.mu.Lock()
	if err := m.check(); err != nil {
		m.mu.Unlock()
		return err
	}
	owner := rec.Owner.Canonical()
	if m.contacts[owner] == nil {
		m.contacts[owner] = make(map[string]domain.ContactRecord)
	}
	m.contacts[owner][rec.Address.Canonical()] = rec
	m.touch(rec.Owner)
	fns := m.emit(domain.Event{
		Kind:    domain.EventContact,
		Sender:  rec.Owner,
		Address: rec.Address,
	})
	m.mu.Unlock()
	deliver(fns)
	return nil
}

// Contact resolves contact metadata with the address's last ledger
// activity folded into LastSeen.
func (m *Memory) Contact(ctx context.Context, owner, address domain.Address) (domain.ContactRecord, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.check(); err != nil {
		return domain.ContactRecord{}, false, err
	}
	rec, ok := m.contacts[owner.Canonical()][address.Canonical()]
	if !ok {
		return domain.ContactRecord{}, false, nil
	}
	rec.LastSeen = m.lastSeen[address.Canonical()]
	return rec, true, nil
}

// PublishKey publishes (or replaces) an account's public key.
func (m *Memory) PublishKey(ctx context.Context, rec domain.PublicKeyRecord) error {
	m.mu.Lock()
	if err := m.check(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.keys[rec.Address.Canonical()] = rec.PublicKey
	m.touch(rec.Address)
	fns := m.emit(domain.Event{Kind: domain.EventPublicKey, Address: rec.Address})
	m.mu.Unlock()
	deliver(fns)
	return nil
}

// PublicKey returns the most recently published key for an address.
func (m *Memory) PublicKey(ctx context.Context, address domain.Address) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.check(); err != nil {
		return "", false, err
	}
	key, ok := m.keys[address.Canonical()]
	return key, ok && key != "", nil
}

// Subscribe registers fn for events of one kind.
func (m *Memory) Subscribe(kind domain.EventKind, fn func(domain.Event)) (domain.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return nil, err
	}
	if m.subs[kind] == nil {
		m.subs[kind] = make(map[string]func(domain.Event))
	}
	id := uuid.NewString()
	m.subs[kind][id] = fn
	return &memorySub{ledger: m, kind: kind, id: id}, nil
}

// EventsSince returns journal entries after the given sequence number and
// the new high-water mark. It backs the dev daemon's polling endpoint.
func (m *Memory) EventsSince(after int) ([]domain.Event, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if after < 0 {
		after = 0
	}
	if after >= len(m.journal) {
		return nil, len(m.journal)
	}
	out := append([]domain.Event(nil), m.journal[after:]...)
	return out, len(m.journal)
}

// LastSeen returns the address's last observed activity timestamp.
func (m *Memory) LastSeen(address domain.Address) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastSeen[address.Canonical()]
}

// touch records ledger activity for presence derivation. Caller holds mu.
func (m *Memory) touch(a domain.Address) {
	if a != "" {
		m.lastSeen[a.Canonical()] = time.Now().Unix()
	}
}

// emit journals the event and snapshots the matching callbacks bound to it;
// the caller invokes them after releasing the lock so a callback can call
// back into the ledger without deadlocking. Caller holds mu.
func (m *Memory) emit(ev domain.Event) []func() {
	m.journal = append(m.journal, ev)
	out := make([]func(), 0, len(m.subs[ev.Kind]))
	for _, fn := range m.subs[ev.Kind] {
		f := fn
		out = append(out, func() { f(ev) })
	}
	return out
}

func deliver(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

type memorySub struct {
	ledger *Memory
	kind   domain.EventKind
	id     string
	once   sync.Once
}

// Cancel unregisters the callback. Safe to call multiple times.
func (s *memorySub) Cancel() {
	s.once.Do(func() {
		s.ledger.mu.Lock()
		delete(s.ledger.subs[s.kind], s.id)
		s.ledger.mu.Unlock()
	})
}

// Compile-time assertion that Memory implements domain.Ledger.
var _ domain.Ledger = (*Memory)(nil)
