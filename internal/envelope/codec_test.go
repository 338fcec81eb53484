package envelope_test

import (
	"errors"
	"testing"

	"ledgerchat/internal/crypto"
	"ledgerchat/internal/domain"
	"ledgerchat/internal/envelope"
)

func TestEncryptDecryptText_RoundTrip_OK(t *testing.T) {
	pair, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	ct, err := envelope.EncryptText("hi", pair.PublicBase64())
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if ct == "hi" || ct == "" {
		t.Fatalf("suspicious ciphertext %q", ct)
	}

	pt, err := envelope.DecryptText(ct, pair.Private)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if pt != "hi" {
		t.Fatalf("got %q", pt)
	}
}

func TestEncryptText_EmptyKey_Fails(t *testing.T) {
	if _, err := envelope.EncryptText("hi", ""); !errors.Is(err, domain.ErrEncryption) {
		t.Fatalf("want ErrEncryption, got %v", err)
	}
}

func TestDecryptText_NotBase64_Fails(t *testing.T) {
	pair, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := envelope.DecryptText("%%%", pair.Private); !errors.Is(err, domain.ErrDecryption) {
		t.Fatalf("want ErrDecryption, got %v", err)
	}
}

func TestFileRef_RoundTrip(t *testing.T) {
	ref := envelope.FileRef("bafy123", "report.pdf")
	if ref != "ipfs://bafy123/report.pdf" {
		t.Fatalf("got %q", ref)
	}

	id, name, err := envelope.ParseFileRef(ref)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != "bafy123" || name != "report.pdf" {
		t.Fatalf("got %q %q", id, name)
	}
}

func TestParseFileRef_NameWithSlashes(t *testing.T) {
	id, name, err := envelope.ParseFileRef("ipfs://cid/dir/nested.txt")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != "cid" || name != "dir/nested.txt" {
		t.Fatalf("got %q %q", id, name)
	}
}

func TestParseFileRef_Malformed_Fails(t *testing.T) {
	for _, ref := range []string{"http://cid/name", "ipfs://", "ipfs:///name", "plain text"} {
		if _, _, err := envelope.ParseFileRef(ref); err == nil {
			t.Fatalf("expected error for %q", ref)
		}
	}
}
