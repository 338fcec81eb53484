// Package directory maintains the per-account address book: ledger-sourced
// contact metadata (name, public key, blocked flag, last seen) indexed by a
// client-local membership list.
package directory
