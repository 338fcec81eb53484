package crypto

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"ledgerchat/internal/domain"
)

// ConversationID derives the conversation identifier for an unordered
// address pair: Keccak-256 over the sorted lowercase addresses, hex-encoded.
// Matches the contract-side derivation, so both parties resolve the same id.
func ConversationID(a, b domain.Address) domain.ConversationID {
	lo, hi := a.Canonical(), b.Canonical()
	if lo > hi {
		lo, hi = hi, lo
	}
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lo))
	h.Write([]byte(hi))
	return domain.ConversationID(hex.EncodeToString(h.Sum(nil)))
}
