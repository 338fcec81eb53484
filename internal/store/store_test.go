package store_test

import (
	"context"
	"testing"

	"ledgerchat/internal/domain"
	"ledgerchat/internal/store"
)

func open(t *testing.T, passphrase string) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir(), passphrase)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestKeyPair_SaveLoad_OK(t *testing.T) {
	ctx := context.Background()
	s := open(t, "hunter2")

	kp := domain.KeyPair{Public: []byte{1, 2, 3}, Private: []byte{4, 5, 6}}
	if err := s.SaveKeyPair(ctx, "0xAlice", kp); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Lookup is canonical: case differences in the address must not matter.
	got, ok, err := s.LoadKeyPair(ctx, "0xALICE")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatal("pair not found after save")
	}
	if string(got.Public) != string(kp.Public) || string(got.Private) != string(kp.Private) {
		t.Fatal("mismatch after load")
	}
}

func TestKeyPair_Missing_NotFound(t *testing.T) {
	s := open(t, "pass")
	_, ok, err := s.LoadKeyPair(context.Background(), "0xnobody")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatal("found a pair that was never saved")
	}
}

func TestKeyPair_WrongPassphrase_Fails(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := store.Open(dir, "correct")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SaveKeyPair(ctx, "0xalice", domain.KeyPair{Public: []byte{1}, Private: []byte{2}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := store.Open(dir, "wrong")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	if _, _, err := s2.LoadKeyPair(ctx, "0xalice"); err == nil {
		t.Fatal("expected error with wrong passphrase")
	}
}

func TestKeyPair_Upsert_Replaces(t *testing.T) {
	ctx := context.Background()
	s := open(t, "pass")

	if err := s.SaveKeyPair(ctx, "0xalice", domain.KeyPair{Public: []byte{1}, Private: []byte{1}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SaveKeyPair(ctx, "0xalice", domain.KeyPair{Public: []byte{9}, Private: []byte{9}}); err != nil {
		t.Fatalf("resave: %v", err)
	}
	got, _, err := s.LoadKeyPair(ctx, "0xalice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Public[0] != 9 {
		t.Fatal("second save did not replace the first")
	}
}

func TestMembership_OrderAndDedup(t *testing.T) {
	ctx := context.Background()
	s := open(t, "pass")
	owner := domain.Address("0xowner")

	for _, a := range []domain.Address{"0xccc", "0xaaa", "0xbbb", "0xCCC"} {
		if err := s.AppendMember(ctx, owner, a); err != nil {
			t.Fatalf("append %s: %v", a, err)
		}
	}

	got, err := s.Members(ctx, owner)
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	want := []domain.Address{"0xccc", "0xaaa", "0xbbb"}
	if len(got) != len(want) {
		t.Fatalf("want %d members, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: want %s, got %s", i, want[i], got[i])
		}
	}
}

func TestMembership_Remove(t *testing.T) {
	ctx := context.Background()
	s := open(t, "pass")
	owner := domain.Address("0xowner")

	if err := s.AppendMember(ctx, owner, "0xaaa"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.RemoveMember(ctx, owner, "0xAAA"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, err := s.Members(ctx, owner)
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("member survived removal: %v", got)
	}
}

func TestOutbox_UpsertAndMiss(t *testing.T) {
	ctx := context.Background()
	s := open(t, "pass")
	conv := domain.ConversationID("c1")

	if err := s.SavePlaintext(ctx, conv, "m1", "original"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SavePlaintext(ctx, conv, "m1", "edited"); err != nil {
		t.Fatalf("resave: %v", err)
	}

	pt, ok, err := s.Plaintext(ctx, conv, "m1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok || pt != "edited" {
		t.Fatalf("want edited, got %q (found=%v)", pt, ok)
	}

	if _, ok, err := s.Plaintext(ctx, conv, "never-sent"); err != nil || ok {
		t.Fatalf("miss: found=%v err=%v", ok, err)
	}
}

func TestOpen_Reopen_MigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		s, err := store.Open(dir, "pass")
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		if err := s.Close(); err != nil {
			t.Fatalf("close #%d: %v", i+1, err)
		}
	}
}
