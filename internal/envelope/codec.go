package envelope

import (
	"fmt"
	"strings"

	"ledgerchat/internal/crypto"
	"ledgerchat/internal/domain"
)

// FileScheme prefixes blob references embedded as file-message payloads.
const FileScheme = "ipfs"

// EncryptText seals plaintext for a recipient's base64 SPKI public key and
// returns the base64 ciphertext stored as the ledger payload. The caller
// must resolve the contact's published key first; an empty key means the
// recipient is unknown and the send path has to block.
func EncryptText(plaintext, recipientPubB64 string) (string, error) {
	if recipientPubB64 == "" {
		return "", fmt.Errorf("%w: empty recipient key", domain.ErrEncryption)
	}
	pub, err := crypto.FromB64(recipientPubB64)
	if err != nil {
		return "", fmt.Errorf("%w: recipient key is not base64: %v", domain.ErrEncryption, err)
	}
	ct, err := crypto.Encrypt([]byte(plaintext), pub)
	if err != nil {
		return "", err
	}
	return crypto.B64(ct), nil
}

// DecryptText opens a base64 ciphertext with the local PKCS#8 DER private
// key. Failure is terminal for this payload: the message is rendered as
// undecryptable, never dropped and never retried.
func DecryptText(ciphertextB64 string, priv []byte) (string, error) {
	ct, err := crypto.FromB64(ciphertextB64)
	if err != nil {
		return "", fmt.Errorf("%w: payload is not base64: %v", domain.ErrDecryption, err)
	}
	pt, err := crypto.Decrypt(ct, priv)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}

// FileRef formats a blob reference as stored in a file-message payload,
// addressed as scheme://identifier/name.
func FileRef(id domain.ContentID, name string) string {
	return fmt.Sprintf("%s://%s/%s", FileScheme, id, name)
}

// ParseFileRef splits a file-message payload back into content id and name.
func ParseFileRef(ref string) (domain.ContentID, string, error) {
	rest, ok := strings.CutPrefix(ref, FileScheme+"://")
	if !ok {
		return "", "", fmt.Errorf("not a %s reference: %q", FileScheme, ref)
	}
	id, name, ok := strings.Cut(rest, "/")
	if !ok || id == "" {
		return "", "", fmt.Errorf("malformed blob reference: %q", ref)
	}
	return domain.ContentID(id), name, nil
}
