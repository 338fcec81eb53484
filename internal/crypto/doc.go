// Package crypto exposes the minimal primitives used by ledgerchat.
//
// Contents
//
//   - RSA-2048 key generation and OAEP/SHA-256 seal/open
//     (GenerateKeyPair, Encrypt, Decrypt, MaxPlaintext)
//   - Base64 wire encoding helpers (B64, FromB64)
//   - Keccak-256 conversation id derivation (ConversationID)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//
// # Notes
//
// Keys travel as SPKI public / PKCS#8 private DER, base64 on the wire,
// interoperable with the WebCrypto exports peers publish. Callers should
// treat private material as sensitive and rely on Wipe when practical to
// reduce lifetime in memory.
package crypto
