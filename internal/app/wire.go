package app

import (
	"context"

	"go.uber.org/zap"

	"ledgerchat/internal/blob"
	"ledgerchat/internal/domain"
	"ledgerchat/internal/ledger"
	directorysvc "ledgerchat/internal/services/directory"
	keyvaultsvc "ledgerchat/internal/services/keyvault"
	messengersvc "ledgerchat/internal/services/messenger"
	syncsvc "ledgerchat/internal/services/sync"
	"ledgerchat/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Logger    *zap.Logger
	Store     *store.Store
	Ledger    domain.Ledger
	Blobs     domain.BlobStore
	Signer    domain.Signer
	Vault     domain.KeyVault
	Directory domain.Directory
	Messenger domain.Messenger
	Sync      domain.SyncEngine
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, logger *zap.Logger) (*Wire, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	st, err := store.Open(cfg.Home, cfg.Passphrase)
	if err != nil {
		return nil, err
	}

	var lg domain.Ledger
	if cfg.LedgerURL != "" {
		lg = ledger.NewHTTP(cfg.LedgerURL)
	} else {
		// No gateway configured: run against an in-process ledger. Useful
		// for trying the CLI out, useless for talking to anyone else.
		lg = ledger.NewMemory()
	}

	var blobs domain.BlobStore
	if cfg.BlobBucket != "" {
		blobs = blob.NewS3(blob.S3Config{
			AccessKey: cfg.BlobAccessKey,
			SecretKey: cfg.BlobSecretKey,
			Endpoint:  cfg.BlobEndpoint,
			Bucket:    cfg.BlobBucket,
			Region:    cfg.BlobRegion,
		})
	} else {
		blobs = blob.NewMemory()
	}

	vault := keyvaultsvc.New(st, logger)

	return &Wire{
		Logger:    logger,
		Store:     st,
		Ledger:    lg,
		Blobs:     blobs,
		Signer:    StaticSigner(cfg.Account),
		Vault:     vault,
		Directory: directorysvc.New(lg, st, logger),
		Messenger: messengersvc.New(lg, vault, blobs, st, logger),
		Sync:      syncsvc.New(lg, vault, st, logger),
	}, nil
}

// Close releases the wire's local resources.
func (w *Wire) Close() error { return w.Store.Close() }

// StaticSigner is the CLI's stand-in for a wallet session: the account
// address is supplied up front and write authorization is assumed.
type StaticSigner domain.Address

// Account returns the configured address.
func (s StaticSigner) Account(ctx context.Context) (domain.Address, error) {
	return domain.Address(s), nil
}

// Compile-time assertion that StaticSigner implements domain.Signer.
var _ domain.Signer = StaticSigner("")
