package app

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string // data directory, e.g. $HOME/.ledgerchat
	Account    string // local account address (from the wallet/signer)
	Passphrase string // protects key pair blobs at rest
	LedgerURL  string // ledger gateway base URL; empty runs in-process

	// Optional S3-compatible blob store; attachments stay disabled when
	// the bucket is unset.
	BlobAccessKey string
	BlobSecretKey string
	BlobEndpoint  string
	BlobBucket    string
	BlobRegion    string
}

// LoadConfig reads configuration from the environment, with an optional
// .env file for local development. Flags layered on top by the CLI win.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Home:          os.Getenv("LEDGERCHAT_HOME"),
		Account:       os.Getenv("LEDGERCHAT_ACCOUNT"),
		Passphrase:    os.Getenv("LEDGERCHAT_PASSPHRASE"),
		LedgerURL:     os.Getenv("LEDGERCHAT_LEDGER_URL"),
		BlobAccessKey: os.Getenv("LEDGERCHAT_BLOB_ACCESS_KEY"),
		BlobSecretKey: os.Getenv("LEDGERCHAT_BLOB_SECRET_KEY"),
		BlobEndpoint:  os.Getenv("LEDGERCHAT_BLOB_ENDPOINT"),
		BlobBucket:    os.Getenv("LEDGERCHAT_BLOB_BUCKET"),
		BlobRegion:    getEnv("LEDGERCHAT_BLOB_REGION", "auto"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
