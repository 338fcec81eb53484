// Package ledger contains clients for the append-only record store that is
// the system's source of truth.
//
// The ledger itself (contract, consensus, fees) is an external collaborator;
// this package only implements the domain.Ledger interface against it:
// an HTTP client for a gateway bridge, and an in-process implementation
// backing tests and the dev daemon.
package ledger
