package messenger

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ledgerchat/internal/crypto"
	"ledgerchat/internal/domain"
	"ledgerchat/internal/envelope"
)

// Service prepares and appends outbound conversation events.
//
// High-level flow for a text send:
//   - Resolve the recipient's published public key (fail fast when absent:
//     an unknown recipient must be resolved before resending).
//   - Seal the body for that key and append the record; the ledger assigns
//     the stable message id.
//   - Retain the plaintext locally so the sender can render its own
//     history, since the ciphertext is recipient-only.
//
// Everything here either reaches the ledger (authoritative success) or
// fails loudly; no append is cached as success.
type Service struct {
	ledger domain.Ledger
	vault  domain.KeyVault
	blobs  domain.BlobStore
	outbox domain.OutboxStore
	logger *zap.Logger
}

// New constructs a messenger with the given ledger, vault, blob store, and
// outbox.
func New(ledger domain.Ledger, vault domain.KeyVault, blobs domain.BlobStore, outbox domain.OutboxStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{ledger: ledger, vault: vault, blobs: blobs, outbox: outbox, logger: logger}
}

// Connect ensures the account's key pair exists and publishes the public
// key on the ledger, returning its fingerprint. Run once per device on
// first connect; later runs are cheap no-ops that re-publish the same key.
func (s *Service) Connect(ctx context.Context, account domain.Address) (domain.Fingerprint, error) {
	kp, err := s.vault.EnsureKeyPair(ctx, account)
	if err != nil {
		return "", err
	}
	rec := domain.PublicKeyRecord{Address: account, PublicKey: kp.PublicBase64()}
	if err := s.ledger.PublishKey(ctx, rec); err != nil {
		return "", err
	}
	return domain.Fingerprint(crypto.Fingerprint(kp.Public)), nil
}

// Send encrypts text for the recipient's published key and appends it.
func (s *Service) Send(ctx context.Context, from, to domain.Address, text string) (domain.Message, error) {
	pub, ok, err := s.ledger.PublicKey(ctx, to)
	if err != nil {
		return domain.Message{}, err
	}
	if !ok {
		return domain.Message{}, fmt.Errorf("%w: %s", domain.ErrUnknownRecipient, to.Short())
	}
	ct, err := envelope.EncryptText(text, pub)
	if err != nil {
		return domain.Message{}, err
	}
	conv := crypto.ConversationID(from, to)
	rec, err := s.ledger.AppendMessage(ctx, domain.MessageRecord{
		ConversationID: conv,
		Sender:         from,
		Recipient:      to,
		Payload:        ct,
		Timestamp:      time.Now().Unix(),
	})
	if err != nil {
		return domain.Message{}, err
	}
	// The message is on the ledger either way; losing the local copy only
	// degrades the sender's own rendering of it.
	if err := s.outbox.SavePlaintext(ctx, conv, rec.ID, text); err != nil {
		s.logger.Warn("failed to retain sent plaintext",
			zap.String("message_id", rec.ID), zap.Error(err))
	}
	return s.view(rec, text, false), nil
}

// SendFile uploads the bytes to the blob store and appends a file message
// whose payload is the content reference.
func (s *Service) SendFile(ctx context.Context, from, to domain.Address, name string, data []byte) (domain.Message, error) {
	id, err := s.blobs.Put(ctx, name, data)
	if err != nil {
		return domain.Message{}, err
	}
	ref := envelope.FileRef(id, name)
	conv := crypto.ConversationID(from, to)
	rec, err := s.ledger.AppendMessage(ctx, domain.MessageRecord{
		ConversationID: conv,
		Sender:         from,
		Recipient:      to,
		Payload:        ref,
		Timestamp:      time.Now().Unix(),
		IsFile:         true,
	})
	if err != nil {
		return domain.Message{}, err
	}
	return s.view(rec, ref, true), nil
}

// AckDelivered appends the recipient-side delivery acknowledgment that
// moves the sender's view of the message to DELIVERED.
func (s *Service) AckDelivered(ctx context.Context, me domain.Address, id domain.ConversationID, messageID string) error {
	return s.ledger.AppendStatus(ctx, domain.StatusRecord{
		ConversationID: id,
		MessageID:      messageID,
		Status:         domain.StatusDelivered,
		Actor:          me,
		Timestamp:      time.Now().Unix(),
	})
}

// MarkRead appends the recipient's read acknowledgment. The state machine
// ignores it for the actor's own sent messages.
func (s *Service) MarkRead(ctx context.Context, me domain.Address, id domain.ConversationID, messageID string) error {
	return s.ledger.AppendStatus(ctx, domain.StatusRecord{
		ConversationID: id,
		MessageID:      messageID,
		Status:         domain.StatusRead,
		Actor:          me,
		Timestamp:      time.Now().Unix(),
	})
}

// React appends an emoji reaction; re-reacting with the same emoji is an
// upsert, never a duplicate.
func (s *Service) React(ctx context.Context, me domain.Address, id domain.ConversationID, messageID, emoji string) error {
	return s.ledger.AppendReaction(ctx, domain.ReactionRecord{
		ConversationID: id,
		MessageID:      messageID,
		Emoji:          emoji,
		User:           me,
		Timestamp:      time.Now().Unix(),
	})
}

// Edit appends an edit supersede carrying the re-encrypted replacement
// body. The original record stays on the ledger for audit.
func (s *Service) Edit(ctx context.Context, me, to domain.Address, id domain.ConversationID, messageID, newText string) error {
	pub, ok, err := s.ledger.PublicKey(ctx, to)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownRecipient, to.Short())
	}
	ct, err := envelope.EncryptText(newText, pub)
	if err != nil {
		return err
	}
	if err := s.ledger.AppendSupersede(ctx, domain.SupersedeRecord{
		ConversationID: id,
		MessageID:      messageID,
		Kind:           domain.SupersedeEdit,
		Payload:        ct,
		Actor:          me,
		Timestamp:      time.Now().Unix(),
	}); err != nil {
		return err
	}
	// Replace the retained plaintext so the sender renders the edit.
	if err := s.outbox.SavePlaintext(ctx, id, messageID, newText); err != nil {
		s.logger.Warn("failed to retain edited plaintext",
			zap.String("message_id", messageID), zap.Error(err))
	}
	return nil
}

// Delete appends a delete supersede. Presentation honors the marker; the
// original ciphertext is retained.
func (s *Service) Delete(ctx context.Context, me domain.Address, id domain.ConversationID, messageID string) error {
	return s.ledger.AppendSupersede(ctx, domain.SupersedeRecord{
		ConversationID: id,
		MessageID:      messageID,
		Kind:           domain.SupersedeDelete,
		Actor:          me,
		Timestamp:      time.Now().Unix(),
	})
}

func (s *Service) view(rec domain.MessageRecord, content string, isFile bool) domain.Message {
	return domain.Message{
		ID:             rec.ID,
		ConversationID: rec.ConversationID,
		Sender:         rec.Sender,
		Recipient:      rec.Recipient,
		Content:        content,
		Ciphertext:     rec.Payload,
		Timestamp:      rec.Timestamp,
		IsFile:         isFile,
		Status:         domain.StatusSent,
	}
}

// Compile-time assertion that Service implements domain.Messenger.
var _ domain.Messenger = (*Service)(nil)
