package types

// Contact is one entry of an account's address book.
//
// PublicKey is the base64 key most recently published by that address on the
// ledger; it stays empty until the contact has published one. LastSeen is
// derived from that address's last ledger activity and is advisory only.
type Contact struct {
	Address   Address `json:"address"`
	Name      string  `json:"name"`
	PublicKey string  `json:"public_key,omitempty"`
	Blocked   bool    `json:"blocked"`
	LastSeen  int64   `json:"last_seen"`
}
