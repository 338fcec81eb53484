package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ledgerchat/internal/domain"
)

// SavePlaintext retains the plaintext of a sent message. Sent bodies are
// encrypted for the recipient only, so this copy is the sender's sole way
// to render its own history. Saving again (an edit) replaces the entry.
func (s *Store) SavePlaintext(ctx context.Context, id domain.ConversationID, messageID, plaintext string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outbox (conversation_id, message_id, plaintext, saved_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(conversation_id, message_id) DO UPDATE SET
		   plaintext = excluded.plaintext, saved_at = excluded.saved_at`,
		string(id), messageID, plaintext, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("retain plaintext for message %s: %w", messageID, err)
	}
	return nil
}

// Plaintext returns the retained plaintext for a sent message, if any.
func (s *Store) Plaintext(ctx context.Context, id domain.ConversationID, messageID string) (string, bool, error) {
	var pt string
	err := s.db.QueryRowContext(ctx,
		`SELECT plaintext FROM outbox WHERE conversation_id = ? AND message_id = ?`,
		string(id), messageID,
	).Scan(&pt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load plaintext for message %s: %w", messageID, err)
	}
	return pt, true, nil
}

// Compile-time assertion that Store implements domain.OutboxStore.
var _ domain.OutboxStore = (*Store)(nil)
