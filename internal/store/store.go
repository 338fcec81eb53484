package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultDBFileName is the SQLite filename under the data directory.
const DefaultDBFileName = "ledgerchat.db"

var migrations = []string{
	`
CREATE TABLE IF NOT EXISTS key_pairs (
  account    TEXT PRIMARY KEY,
  blob       BLOB NOT NULL,
  created_at INTEGER NOT NULL
);
`,
	`
CREATE TABLE IF NOT EXISTS memberships (
  owner    TEXT NOT NULL,
  address  TEXT NOT NULL,
  added_at INTEGER NOT NULL,
  PRIMARY KEY (owner, address)
);
`,
	`
CREATE TABLE IF NOT EXISTS outbox (
  conversation_id TEXT NOT NULL,
  message_id      TEXT NOT NULL,
  plaintext       TEXT NOT NULL,
  saved_at        INTEGER NOT NULL,
  PRIMARY KEY (conversation_id, message_id)
);
`,
	`
CREATE INDEX IF NOT EXISTS idx_memberships_owner_order
ON memberships (owner, rowid);
`,
}

// Store is the client-local persistence layer: account key pairs (encrypted
// at rest), per-account membership lists, and retained sent plaintexts. It
// is a cache and a vault, never the source of truth; the ledger is.
type Store struct {
	db         *sql.DB
	passphrase string
}

// Open opens (or creates) the database under dataDir and runs migrations.
// The passphrase protects key pair blobs at rest.
func Open(dataDir, passphrase string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return OpenPath(filepath.Join(dataDir, DefaultDBFileName), passphrase)
}

// OpenPath opens SQLite at an explicit path and runs schema migrations.
func OpenPath(dbPath, passphrase string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", filepath.ToSlash(dbPath))
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	s := &Store{db: db, passphrase: passphrase}
	if err := s.enableWALMode(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.applyMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) applyMigrations() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version >= len(migrations) {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i := version; i < len(migrations); i++ {
		if _, err := tx.Exec(migrations[i]); err != nil {
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d;", i+1)); err != nil {
			return fmt.Errorf("set schema version %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration transaction: %w", err)
	}
	return nil
}

func (s *Store) enableWALMode() error {
	var journalMode string
	if err := s.db.QueryRow("PRAGMA journal_mode=WAL;").Scan(&journalMode); err != nil {
		return fmt.Errorf("enable WAL mode: %w", err)
	}
	if !strings.EqualFold(journalMode, "wal") {
		return fmt.Errorf("enable WAL mode: unexpected journal mode %q", journalMode)
	}
	return nil
}
