// Package store provides SQLite-backed local persistence for ledgerchat's
// client-side data.
//
// It contains concrete implementations of the domain storage interfaces:
//   - Account key pairs, encrypted at rest with a passphrase-derived key
//     (scrypt + ChaCha20-Poly1305)
//   - Per-account contact membership lists (a local index over ledger
//     metadata, insertion-ordered)
//   - Retained sent plaintexts (the sender cannot decrypt its own
//     recipient-sealed ciphertexts)
//
// Schema changes append to the migrations slice and are versioned through
// PRAGMA user_version.
package store
