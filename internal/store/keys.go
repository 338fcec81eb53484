package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ledgerchat/internal/domain"
)

// SaveKeyPair encrypts the pair with the store passphrase and upserts it
// under the account. Writing the same account again replaces the blob.
func (s *Store) SaveKeyPair(ctx context.Context, account domain.Address, kp domain.KeyPair) error {
	raw, err := json.Marshal(kp)
	if err != nil {
		return err
	}
	sealed, err := encrypt(s.passphrase, raw)
	if err != nil {
		return fmt.Errorf("seal key pair: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO key_pairs (account, blob, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(account) DO UPDATE SET blob = excluded.blob`,
		account.Canonical(), sealed, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("store key pair for %s: %w", account.Short(), err)
	}
	return nil
}

// LoadKeyPair returns the account's key pair; ok is false when none exists.
func (s *Store) LoadKeyPair(ctx context.Context, account domain.Address) (domain.KeyPair, bool, error) {
	var sealed []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT blob FROM key_pairs WHERE account = ?`, account.Canonical(),
	).Scan(&sealed)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.KeyPair{}, false, nil
	}
	if err != nil {
		return domain.KeyPair{}, false, fmt.Errorf("load key pair for %s: %w", account.Short(), err)
	}
	raw, err := decrypt(s.passphrase, sealed)
	if err != nil {
		return domain.KeyPair{}, false, err
	}
	var kp domain.KeyPair
	if err := json.Unmarshal(raw, &kp); err != nil {
		return domain.KeyPair{}, false, err
	}
	return kp, true, nil
}

// Compile-time assertion that Store implements domain.KeyStore.
var _ domain.KeyStore = (*Store)(nil)
