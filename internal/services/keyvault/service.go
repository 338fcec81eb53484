package keyvault

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"ledgerchat/internal/crypto"
	"ledgerchat/internal/domain"
)

// Service manages the account's long-term RSA key pair using a backing
// store.
//
// Generation is create-once: the first EnsureKeyPair for an account
// generates and persists a pair, every later call returns the stored one.
// There is no rotation; the pair lives as long as the account does.
type Service struct {
	keys   domain.KeyStore
	group  singleflight.Group
	logger *zap.Logger
}

// New returns a key vault backed by the given store.
func New(keys domain.KeyStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{keys: keys, logger: logger}
}

// EnsureKeyPair returns the stored pair for account, generating, persisting,
// and returning a fresh one if absent. Concurrent calls for the same account
// coalesce into a single read-check-generate-write, so both callers observe
// the same pair.
//
// Publishing the public key to the ledger is the caller's job; the vault
// never performs ledger I/O.
func (s *Service) EnsureKeyPair(ctx context.Context, account domain.Address) (domain.KeyPair, error) {
	v, err, _ := s.group.Do(account.Canonical(), func() (any, error) {
		kp, ok, err := s.keys.LoadKeyPair(ctx, account)
		if err != nil {
			return domain.KeyPair{}, err
		}
		if ok {
			return kp, nil
		}
		kp, err = crypto.GenerateKeyPair()
		if err != nil {
			return domain.KeyPair{}, err
		}
		if err := s.keys.SaveKeyPair(ctx, account, kp); err != nil {
			return domain.KeyPair{}, err
		}
		s.logger.Info("generated key pair",
			zap.String("account", account.Short()),
			zap.String("fingerprint", crypto.Fingerprint(kp.Public)),
		)
		return kp, nil
	})
	if err != nil {
		return domain.KeyPair{}, err
	}
	return v.(domain.KeyPair), nil
}

// KeyPair returns the stored pair without generating one.
func (s *Service) KeyPair(ctx context.Context, account domain.Address) (domain.KeyPair, bool, error) {
	return s.keys.LoadKeyPair(ctx, account)
}

// Compile-time assertion that Service implements domain.KeyVault.
var _ domain.KeyVault = (*Service)(nil)
