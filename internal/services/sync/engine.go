package sync

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"ledgerchat/internal/conversation"
	"ledgerchat/internal/crypto"
	"ledgerchat/internal/domain"
	"ledgerchat/internal/envelope"
)

// PresenceWindow bounds how recently a contact must have touched the ledger
// to count as online. Advisory only; there is no heartbeat protocol.
const PresenceWindow = 300 * time.Second

// Engine reconciles the local conversation view against the ledger.
//
// The ledger is authoritative but slow; the engine's job is to rebuild a
// consistent snapshot from it on demand and on matching events. Rebuilds
// are full reloads rather than incremental patches: some redundant
// decryption work in exchange for never presenting a half-updated state.
// Concurrent reloads of the same conversation coalesce into one.
type Engine struct {
	ledger domain.Ledger
	vault  domain.KeyVault
	outbox domain.OutboxStore
	logger *zap.Logger
	group  singleflight.Group
}

// New constructs a sync engine.
func New(ledger domain.Ledger, vault domain.KeyVault, outbox domain.OutboxStore, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{ledger: ledger, vault: vault, outbox: outbox, logger: logger}
}

// LoadConversation returns the account's conversation with contact in
// ledger insertion order, the only ordering guarantee in the system; no
// wall-clock reordering happens here or anywhere downstream.
//
// Each payload is recovered independently: inbound bodies are decrypted
// with the local private key, own sends are restored from the retained
// plaintext, file payloads pass through as references. One failure
// degrades only that message to an undecryptable placeholder.
func (e *Engine) LoadConversation(ctx context.Context, account, contact domain.Address) ([]domain.Message, error) {
	conv := crypto.ConversationID(account, contact)
	v, err, _ := e.group.Do(string(conv), func() (any, error) {
		return e.load(ctx, account, conv)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Message), nil
}

func (e *Engine) load(ctx context.Context, account domain.Address, conv domain.ConversationID) ([]domain.Message, error) {
	kp, err := e.vault.EnsureKeyPair(ctx, account)
	if err != nil {
		return nil, err
	}

	records, err := e.ledger.Messages(ctx, conv)
	if err != nil {
		return nil, err
	}
	st := conversation.New(conv)
	for _, rec := range records {
		content, undecryptable := e.recover(ctx, account, kp, conv, rec.ID, rec.Payload, rec.IsFile, rec.Sender, rec.Recipient)
		st.Append(rec, content, undecryptable)
	}

	statuses, err := e.ledger.Statuses(ctx, conv)
	if err != nil {
		return nil, err
	}
	for _, rec := range statuses {
		st.ApplyStatus(rec)
	}

	supersedes, err := e.ledger.Supersedes(ctx, conv)
	if err != nil {
		return nil, err
	}
	for _, rec := range supersedes {
		var content string
		var undecryptable bool
		if rec.Kind == domain.SupersedeEdit {
			// Edit payloads are sealed like original bodies: the actor is
			// the sender, so the other party decrypts and the actor reads
			// its own retained plaintext.
			recipient := account
			if rec.Actor.Equal(account) {
				recipient = "" // forces the outbox path below
			}
			content, undecryptable = e.recover(ctx, account, kp, conv, rec.MessageID, rec.Payload, false, rec.Actor, recipient)
		}
		st.ApplySupersede(rec, content, undecryptable)
	}

	reactions, err := e.ledger.Reactions(ctx, conv)
	if err != nil {
		return nil, err
	}
	for _, rec := range reactions {
		st.ApplyReaction(rec)
	}

	return st.Messages(), nil
}

// recover resolves a payload to displayable content. The bool result marks
// the payload undecryptable; the caller never drops such a message.
func (e *Engine) recover(ctx context.Context, account domain.Address, kp domain.KeyPair, conv domain.ConversationID, messageID, payload string, isFile bool, sender, recipient domain.Address) (string, bool) {
	if isFile {
		// Blob references travel in cleartext; the payload is the content.
		return payload, false
	}
	if recipient.Equal(account) {
		pt, err := envelope.DecryptText(payload, kp.Private)
		if err != nil {
			e.logger.Debug("undecryptable message",
				zap.String("message_id", messageID), zap.Error(err))
			return "", true
		}
		return pt, false
	}
	if sender.Equal(account) {
		pt, ok, err := e.outbox.Plaintext(ctx, conv, messageID)
		if err != nil || !ok {
			// Sent from another device, or the local copy is gone; the
			// ciphertext is recipient-only, so nothing can be shown.
			return "", true
		}
		return pt, false
	}
	return "", true
}

// Online reports whether the contact's last ledger activity falls inside
// the presence window. A heuristic, not a liveness guarantee.
func (e *Engine) Online(c domain.Contact, now time.Time) bool {
	if c.LastSeen <= 0 {
		return false
	}
	return now.Unix()-c.LastSeen < int64(PresenceWindow/time.Second)
}

// Compile-time assertion that Engine implements domain.SyncEngine.
var _ domain.SyncEngine = (*Engine)(nil)
