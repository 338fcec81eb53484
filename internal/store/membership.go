package store

import (
	"context"
	"fmt"
	"time"

	"ledgerchat/internal/domain"
)

// AppendMember adds an address to the owner's membership list. Re-adding an
// existing address keeps its original position.
func (s *Store) AppendMember(ctx context.Context, owner, address domain.Address) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO memberships (owner, address, added_at) VALUES (?, ?, ?)`,
		owner.Canonical(), address.Canonical(), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("append member %s for %s: %w", address.Short(), owner.Short(), err)
	}
	return nil
}

// Members returns the owner's membership list in insertion order.
func (s *Store) Members(ctx context.Context, owner domain.Address) ([]domain.Address, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT address FROM memberships WHERE owner = ? ORDER BY rowid`, owner.Canonical(),
	)
	if err != nil {
		return nil, fmt.Errorf("list members for %s: %w", owner.Short(), err)
	}
	defer rows.Close()

	var out []domain.Address
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			return nil, err
		}
		out = append(out, domain.Address(addr))
	}
	return out, rows.Err()
}

// RemoveMember drops an address from the owner's list. Ledger-side contact
// metadata persists independently.
func (s *Store) RemoveMember(ctx context.Context, owner, address domain.Address) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM memberships WHERE owner = ? AND address = ?`,
		owner.Canonical(), address.Canonical(),
	)
	if err != nil {
		return fmt.Errorf("remove member %s for %s: %w", address.Short(), owner.Short(), err)
	}
	return nil
}

// Compile-time assertion that Store implements domain.MembershipStore.
var _ domain.MembershipStore = (*Store)(nil)
