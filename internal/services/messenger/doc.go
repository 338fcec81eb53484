// Package messenger is the outbound half of the protocol: it turns user
// intents (send text, send file, acknowledge, react, edit, delete) into
// sealed ledger records. The inbound half, reading the ledger back into a
// consistent conversation view, lives in the sync package.
package messenger
