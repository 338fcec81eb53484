// Package envelope is the codec between message payloads and their ledger
// representation.
//
// Text bodies are sealed once for the single recipient's RSA public key and
// travel as base64 strings; there is no symmetric session key, so the sender
// cannot reopen its own ciphertext (sent plaintext is retained locally
// instead). File bodies carry a cleartext blob reference with is_file set;
// the reference itself is not encrypted, a known gap of the wire format.
package envelope
