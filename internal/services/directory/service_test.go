package directory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"ledgerchat/internal/domain"
	"ledgerchat/internal/ledger"
	"ledgerchat/internal/services/directory"
	"ledgerchat/internal/store"
)

func newDirectory(t *testing.T) (*directory.Service, *ledger.Memory) {
	t.Helper()
	st, err := store.Open(t.TempDir(), "pass")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	mem := ledger.NewMemory()
	return directory.New(mem, st, nil), mem
}

func TestAddContact_ResolvesPublishedKey(t *testing.T) {
	ctx := context.Background()
	dir, mem := newDirectory(t)

	require.NoError(t, mem.PublishKey(ctx, domain.PublicKeyRecord{Address: "0xbob", PublicKey: "bob-pub"}))

	c, err := dir.AddContact(ctx, "0xalice", "0xbob", "Bob")
	require.NoError(t, err)
	require.Equal(t, "Bob", c.Name)
	require.Equal(t, "bob-pub", c.PublicKey)
	require.False(t, c.Blocked)

	list, err := dir.List(ctx, "0xalice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, domain.Address("0xbob"), list[0].Address)
}

func TestAddContact_NoPublishedKeyYet(t *testing.T) {
	ctx := context.Background()
	dir, mem := newDirectory(t)

	c, err := dir.AddContact(ctx, "0xalice", "0xbob", "Bob")
	require.NoError(t, err)
	require.Empty(t, c.PublicKey)

	// Key published later surfaces on the next read without re-adding.
	require.NoError(t, mem.PublishKey(ctx, domain.PublicKeyRecord{Address: "0xbob", PublicKey: "bob-pub"}))
	c, err = dir.Get(ctx, "0xalice", "0xbob")
	require.NoError(t, err)
	require.Equal(t, "bob-pub", c.PublicKey)
}

func TestToggleBlock_FlipsAndKeepsMetadata(t *testing.T) {
	ctx := context.Background()
	dir, _ := newDirectory(t)

	_, err := dir.AddContact(ctx, "0xalice", "0xbob", "Bob")
	require.NoError(t, err)

	c, err := dir.ToggleBlock(ctx, "0xalice", "0xbob")
	require.NoError(t, err)
	require.True(t, c.Blocked)
	require.Equal(t, "Bob", c.Name)

	c, err = dir.ToggleBlock(ctx, "0xalice", "0xbob")
	require.NoError(t, err)
	require.False(t, c.Blocked)
}

func TestToggleBlock_UnknownContact(t *testing.T) {
	dir, _ := newDirectory(t)
	_, err := dir.ToggleBlock(context.Background(), "0xalice", "0xghost")
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRemoveContact_LocalOnly(t *testing.T) {
	ctx := context.Background()
	dir, _ := newDirectory(t)

	_, err := dir.AddContact(ctx, "0xalice", "0xbob", "Bob")
	require.NoError(t, err)
	require.NoError(t, dir.RemoveContact(ctx, "0xalice", "0xbob"))

	list, err := dir.List(ctx, "0xalice")
	require.NoError(t, err)
	require.Empty(t, list)

	// Ledger metadata survives the local removal.
	c, err := dir.Get(ctx, "0xalice", "0xbob")
	require.NoError(t, err)
	require.Equal(t, "Bob", c.Name)
}

func TestList_MissingLedgerRecordStillListed(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(t.TempDir(), "pass")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	mem := ledger.NewMemory()
	dir := directory.New(mem, st, nil)

	// Membership entry with no ledger-side record behind it.
	require.NoError(t, st.AppendMember(ctx, "0xalice", "0xorphan"))

	list, err := dir.List(ctx, "0xalice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, domain.Address("0xorphan"), list[0].Address)
	require.Empty(t, list[0].Name)
}
