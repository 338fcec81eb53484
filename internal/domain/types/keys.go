package types

import "encoding/base64"

// KeyPair holds an account's long-term RSA key pair.
//
// Public is SPKI (PKIX) DER, Private is PKCS#8 DER. The private key never
// leaves the local device; the public key is what gets published on the
// ledger, base64-encoded.
type KeyPair struct {
	Public  []byte `json:"public"`
	Private []byte `json:"private"`
}

// PublicBase64 returns the public key in the base64 form stored on the ledger.
func (k KeyPair) PublicBase64() string { return base64.StdEncoding.EncodeToString(k.Public) }
