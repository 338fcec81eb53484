package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"fmt"

	"ledgerchat/internal/domain"
)

const (
	// rsaBits matches what peers publish: RSA-2048, OAEP with SHA-256.
	rsaBits = 2048
)

// GenerateKeyPair returns a fresh RSA-2048 pair encoded as SPKI public and
// PKCS#8 private DER.
func GenerateKeyPair() (domain.KeyPair, error) {
	key, err := rsa.GenerateKey(rand.Reader, rsaBits)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("%w: %v", domain.ErrKeyGeneration, err)
	}
	priv, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("%w: %v", domain.ErrKeyGeneration, err)
	}
	pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("%w: %v", domain.ErrKeyGeneration, err)
	}
	return domain.KeyPair{Public: pub, Private: priv}, nil
}

// Encrypt seals plaintext for the recipient's SPKI DER public key using
// RSA-OAEP/SHA-256. Plaintext is bounded by k − 2·hLen − 2 bytes
// (190 for RSA-2048); message bodies are short application payloads, so
// oversize input is a caller error, not a reason for chunking.
func Encrypt(plaintext, recipientPub []byte) ([]byte, error) {
	if len(recipientPub) == 0 {
		return nil, fmt.Errorf("%w: empty recipient key", domain.ErrEncryption)
	}
	parsed, err := x509.ParsePKIXPublicKey(recipientPub)
	if err != nil {
		return nil, fmt.Errorf("%w: parse recipient key: %v", domain.ErrEncryption, err)
	}
	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: recipient key is not RSA", domain.ErrEncryption)
	}
	ct, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncryption, err)
	}
	return ct, nil
}

// Decrypt opens a ciphertext with the local PKCS#8 DER private key. Any
// failure means the ciphertext was not produced for this pair: wrong key,
// corruption, or tampering.
func Decrypt(ciphertext, priv []byte) ([]byte, error) {
	parsed, err := x509.ParsePKCS8PrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("%w: parse private key: %v", domain.ErrDecryption, err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: private key is not RSA", domain.ErrDecryption)
	}
	pt, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, key, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecryption, err)
	}
	return pt, nil
}

// MaxPlaintext returns the OAEP plaintext bound for an SPKI DER public key.
func MaxPlaintext(recipientPub []byte) (int, error) {
	parsed, err := x509.ParsePKIXPublicKey(recipientPub)
	if err != nil {
		return 0, fmt.Errorf("%w: parse recipient key: %v", domain.ErrEncryption, err)
	}
	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return 0, fmt.Errorf("%w: recipient key is not RSA", domain.ErrEncryption)
	}
	return pub.Size() - 2*sha256.Size - 2, nil
}
