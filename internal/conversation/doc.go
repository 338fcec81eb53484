// Package conversation holds the per-conversation message state machine.
//
// It is pure state: records in, ordered message snapshots out. Reading the
// ledger, decrypting payloads, and deciding when to rebuild live in the
// sync engine; the invariants (monotonic status, idempotent reactions,
// sender-only supersedes) live here.
package conversation
