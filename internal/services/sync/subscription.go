package sync

import (
	"context"
	gosync "sync"
	"sync/atomic"

	"go.uber.org/zap"

	"ledgerchat/internal/crypto"
	"ledgerchat/internal/domain"
)

// conversationKinds are the event kinds that can change a conversation view.
var conversationKinds = []domain.EventKind{
	domain.EventMessage,
	domain.EventStatus,
	domain.EventReaction,
	domain.EventSupersede,
}

// Subscription is the caller-owned handle for one conversation watch.
// There is no ambient listener registry; whoever holds the handle cancels it.
type Subscription struct {
	active    atomic.Bool
	refreshMu gosync.Mutex
	handles   []domain.Subscription
	once      gosync.Once
}

// Cancel stops the subscription. Idempotent, and safe against an in-flight
// refresh: a refresh that already started completes, but its snapshot is
// discarded instead of delivered.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.active.Store(false)
		for _, h := range s.handles {
			h.Cancel()
		}
	})
}

// Subscribe watches ledger events touching the {account, contact} pair in
// either direction and delivers a freshly loaded snapshot to onChange after
// each match. Refreshes are serialized per subscription, so onChange never
// observes out-of-order snapshots; refresh errors are logged and the next
// event tries again (the ledger remains authoritative, nothing is lost).
func (e *Engine) Subscribe(ctx context.Context, account, contact domain.Address, onChange func([]domain.Message)) (domain.Subscription, error) {
	sub := &Subscription{}
	sub.active.Store(true)

	conv := crypto.ConversationID(account, contact)
	handler := func(ev domain.Event) {
		if !matches(ev, conv, account, contact) || !sub.active.Load() {
			return
		}
		go e.refresh(ctx, sub, account, contact, onChange)
	}

	for _, kind := range conversationKinds {
		h, err := e.ledger.Subscribe(kind, handler)
		if err != nil {
			// Roll back whatever got registered; the caller retries.
			for _, prev := range sub.handles {
				prev.Cancel()
			}
			return nil, err
		}
		sub.handles = append(sub.handles, h)
	}
	return sub, nil
}

func (e *Engine) refresh(ctx context.Context, sub *Subscription, account, contact domain.Address, onChange func([]domain.Message)) {
	sub.refreshMu.Lock()
	defer sub.refreshMu.Unlock()
	if !sub.active.Load() {
		return
	}
	msgs, err := e.LoadConversation(ctx, account, contact)
	if err != nil {
		e.logger.Warn("conversation refresh failed",
			zap.String("account", account.Short()),
			zap.String("contact", contact.Short()),
			zap.Error(err),
		)
		return
	}
	// Re-check: Cancel may have happened while loading.
	if sub.active.Load() {
		onChange(msgs)
	}
}

// matches reports whether the event touches the pair in either direction.
// The conversation id is the pair's derivation, so a direct id match covers
// both orientations; the sender/recipient check handles gateways that emit
// participant fields without the id.
func matches(ev domain.Event, conv domain.ConversationID, account, contact domain.Address) bool {
	if ev.ConversationID != "" {
		return ev.ConversationID == conv
	}
	if ev.Sender.Equal(account) && ev.Recipient.Equal(contact) {
		return true
	}
	return ev.Sender.Equal(contact) && ev.Recipient.Equal(account)
}
