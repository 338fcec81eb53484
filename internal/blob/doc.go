// Package blob implements content-addressed attachment storage.
//
// Attachment bytes never land on the ledger; messages embed a reference to
// the blob store instead. Identifiers are the hex SHA-256 of the content,
// so identical uploads deduplicate naturally.
package blob
