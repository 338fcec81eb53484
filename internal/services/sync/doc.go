// Package sync reconciles the fast local conversation view against the
// slow, authoritative ledger.
//
// It performs the initial load, event-driven full reloads, per-message
// decryption with graceful degradation, and presence derivation from
// last-seen timestamps. It never retries ledger failures on its own;
// those propagate to the caller untouched.
package sync
