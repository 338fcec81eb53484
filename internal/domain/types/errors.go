package types

import "errors"

// Sentinel errors shared across layers. Call sites wrap them with %w so
// callers can match with errors.Is regardless of added context.
var (
	// ErrKeyGeneration indicates the crypto primitive or randomness source
	// failed while creating a key pair. Fatal to the connect flow.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrEncryption indicates the recipient public key was missing,
	// malformed, or the plaintext could not be sealed for it.
	ErrEncryption = errors.New("encryption failed")

	// ErrDecryption indicates a ciphertext was not produced for this key
	// pair (wrong key, corruption, or tampering). Never retried; the
	// message is surfaced as undecryptable.
	ErrDecryption = errors.New("decryption failed")

	// ErrLedgerUnavailable indicates a ledger read, write, or subscribe
	// failed. The ledger is authoritative, so nothing is lost; callers
	// decide whether to retry.
	ErrLedgerUnavailable = errors.New("ledger unavailable")

	// ErrUnknownRecipient indicates the recipient has no published public
	// key. The send path blocks until the contact is resolved.
	ErrUnknownRecipient = errors.New("recipient has no published public key")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
