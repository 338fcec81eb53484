package directory

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ledgerchat/internal/domain"
)

// Service manages the account's address book.
//
// The ledger's contact metadata is the source of truth; the local
// membership list is only an index of which addresses the account cares
// about (the ledger has no list-contacts-by-owner primitive). The two can
// diverge (a cleared membership list does not lose ledger metadata), so
// every read reconciles against the ledger rather than trusting the index.
type Service struct {
	ledger  domain.Ledger
	members domain.MembershipStore
	logger  *zap.Logger
}

// New returns a contact directory over the given ledger and membership store.
func New(ledger domain.Ledger, members domain.MembershipStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{ledger: ledger, members: members, logger: logger}
}

// AddContact resolves the address's published public key, writes the
// contact record under the owner's ledger namespace, and appends the
// address to the owner's local membership list. A contact without a
// published key is still added; sends to it fail with ErrUnknownRecipient
// until the key appears.
func (s *Service) AddContact(ctx context.Context, owner, address domain.Address, name string) (domain.Contact, error) {
	key, _, err := s.ledger.PublicKey(ctx, address)
	if err != nil {
		return domain.Contact{}, err
	}
	rec := domain.ContactRecord{
		Owner:     owner,
		Address:   address,
		Name:      name,
		PublicKey: key,
		Blocked:   false,
	}
	if err := s.ledger.PutContact(ctx, rec); err != nil {
		return domain.Contact{}, err
	}
	if err := s.members.AppendMember(ctx, owner, address); err != nil {
		return domain.Contact{}, err
	}
	s.logger.Info("contact added",
		zap.String("owner", owner.Short()),
		zap.String("address", address.Short()),
		zap.Bool("has_key", key != ""),
	)
	return s.Get(ctx, owner, address)
}

// ToggleBlock flips the contact's blocked flag via a ledger metadata write.
// Blocking keeps history and does not stop the blocked side from appending;
// enforcement, if any, is a presentation-layer filter.
func (s *Service) ToggleBlock(ctx context.Context, owner, address domain.Address) (domain.Contact, error) {
	rec, ok, err := s.ledger.Contact(ctx, owner, address)
	if err != nil {
		return domain.Contact{}, err
	}
	if !ok {
		return domain.Contact{}, fmt.Errorf("%w: contact %s", domain.ErrNotFound, address.Short())
	}
	rec.Blocked = !rec.Blocked
	if err := s.ledger.PutContact(ctx, rec); err != nil {
		return domain.Contact{}, err
	}
	return s.Get(ctx, owner, address)
}

// RemoveContact drops the address from the local membership list only.
// The ledger metadata persists and the contact still resolves via Get.
func (s *Service) RemoveContact(ctx context.Context, owner, address domain.Address) error {
	return s.members.RemoveMember(ctx, owner, address)
}

// Get resolves a contact fully from ledger metadata, regardless of whether
// a local membership entry exists. The public key is re-resolved from the
// key registry so a key published after AddContact is picked up.
func (s *Service) Get(ctx context.Context, owner, address domain.Address) (domain.Contact, error) {
	rec, ok, err := s.ledger.Contact(ctx, owner, address)
	if err != nil {
		return domain.Contact{}, err
	}
	if !ok {
		return domain.Contact{}, fmt.Errorf("%w: contact %s", domain.ErrNotFound, address.Short())
	}
	c := domain.Contact{
		Address:   rec.Address,
		Name:      rec.Name,
		PublicKey: rec.PublicKey,
		Blocked:   rec.Blocked,
		LastSeen:  rec.LastSeen,
	}
	if key, ok, err := s.ledger.PublicKey(ctx, address); err == nil && ok {
		c.PublicKey = key
	}
	return c, nil
}

// List returns the owner's membership list reconciled against ledger
// metadata. An address whose ledger record is missing still appears, with
// bare metadata, rather than silently dropping out of the list.
func (s *Service) List(ctx context.Context, owner domain.Address) ([]domain.Contact, error) {
	addrs, err := s.members.Members(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Contact, 0, len(addrs))
	for _, addr := range addrs {
		c, err := s.Get(ctx, owner, addr)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				out = append(out, domain.Contact{Address: addr})
				continue
			}
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Compile-time assertion that Service implements domain.Directory.
var _ domain.Directory = (*Service)(nil)
