package sync_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ledgerchat/internal/blob"
	"ledgerchat/internal/crypto"
	"ledgerchat/internal/domain"
	"ledgerchat/internal/ledger"
	"ledgerchat/internal/services/keyvault"
	"ledgerchat/internal/services/messenger"
	syncengine "ledgerchat/internal/services/sync"
	"ledgerchat/internal/store"
)

const (
	alice = domain.Address("0xalice")
	bob   = domain.Address("0xbob")
)

// party is one side of a conversation: its own local store, vault,
// messenger, and sync engine, all sharing the same ledger.
type party struct {
	addr   domain.Address
	msgr   *messenger.Service
	engine *syncengine.Engine
	store  *store.Store
}

func newParty(t *testing.T, mem *ledger.Memory, addr domain.Address) *party {
	t.Helper()
	st, err := store.Open(t.TempDir(), "pass")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	vault := keyvault.New(st, nil)
	p := &party{
		addr:   addr,
		msgr:   messenger.New(mem, vault, blob.NewMemory(), st, nil),
		engine: syncengine.New(mem, vault, st, nil),
		store:  st,
	}
	_, err = p.msgr.Connect(context.Background(), addr)
	require.NoError(t, err)
	return p
}

func setup(t *testing.T) (*party, *party, *ledger.Memory) {
	t.Helper()
	mem := ledger.NewMemory()
	return newParty(t, mem, alice), newParty(t, mem, bob), mem
}

func TestLoadConversation_RecipientDecrypts(t *testing.T) {
	ctx := context.Background()
	a, b, _ := setup(t)

	sent, err := a.msgr.Send(ctx, alice, bob, "hi bob")
	require.NoError(t, err)

	msgs, err := b.engine.LoadConversation(ctx, bob, alice)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, sent.ID, msgs[0].ID)
	require.Equal(t, "hi bob", msgs[0].Content)
	require.Equal(t, domain.StatusSent, msgs[0].Status)
	require.False(t, msgs[0].Undecryptable)
}

func TestLoadConversation_SenderRestoresFromRetainedCopy(t *testing.T) {
	ctx := context.Background()
	a, _, _ := setup(t)

	_, err := a.msgr.Send(ctx, alice, bob, "my own words")
	require.NoError(t, err)

	msgs, err := a.engine.LoadConversation(ctx, alice, bob)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, "my own words", msgs[0].Content)
	require.False(t, msgs[0].Undecryptable)
}

func TestLoadConversation_SenderWithoutRetainedCopy(t *testing.T) {
	ctx := context.Background()
	a, b, mem := setup(t)

	sent, err := a.msgr.Send(ctx, alice, bob, "from this device")
	require.NoError(t, err)

	// A send from another of alice's devices: on the ledger, but with no
	// plaintext in this device's outbox.
	conv := crypto.ConversationID(alice, bob)
	otherKey, _, err := mem.PublicKey(ctx, bob)
	require.NoError(t, err)
	require.NotEmpty(t, otherKey)
	_, err = mem.AppendMessage(ctx, domain.MessageRecord{
		ConversationID: conv,
		Sender:         alice,
		Recipient:      bob,
		Payload:        "c29tZW9uZSBlbHNlJ3MgY2lwaGVydGV4dA==",
	})
	require.NoError(t, err)

	msgs, err := a.engine.LoadConversation(ctx, alice, bob)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, "from this device", msgs[0].Content)
	require.True(t, msgs[1].Undecryptable)
	require.Equal(t, sent.ID, msgs[0].ID)

	// Bob can't read it either: the payload is garbage, only that message
	// degrades.
	bmsgs, err := b.engine.LoadConversation(ctx, bob, alice)
	require.NoError(t, err)
	require.Len(t, bmsgs, 2)
	require.Equal(t, "from this device", bmsgs[0].Content)
	require.True(t, bmsgs[1].Undecryptable)
}

func TestLoadConversation_CorruptedPayloadDegradesOnlyThatMessage(t *testing.T) {
	ctx := context.Background()
	a, b, mem := setup(t)

	_, err := a.msgr.Send(ctx, alice, bob, "first")
	require.NoError(t, err)

	conv := crypto.ConversationID(alice, bob)
	_, err = mem.AppendMessage(ctx, domain.MessageRecord{
		ConversationID: conv,
		Sender:         alice,
		Recipient:      bob,
		Payload:        "not even base64 %%%",
	})
	require.NoError(t, err)

	_, err = a.msgr.Send(ctx, alice, bob, "third")
	require.NoError(t, err)

	msgs, err := b.engine.LoadConversation(ctx, bob, alice)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	require.Equal(t, "first", msgs[0].Content)
	require.True(t, msgs[1].Undecryptable)
	require.Empty(t, msgs[1].Content)
	require.Equal(t, "third", msgs[2].Content)
}

func TestStatusFlow_DeliveredThenRead(t *testing.T) {
	ctx := context.Background()
	a, b, _ := setup(t)

	sent, err := a.msgr.Send(ctx, alice, bob, "hi")
	require.NoError(t, err)
	conv := sent.ConversationID

	require.NoError(t, b.msgr.AckDelivered(ctx, bob, conv, sent.ID))
	msgs, err := a.engine.LoadConversation(ctx, alice, bob)
	require.NoError(t, err)
	require.Equal(t, domain.StatusDelivered, msgs[0].Status)

	require.NoError(t, b.msgr.MarkRead(ctx, bob, conv, sent.ID))
	// A late duplicate DELIVERED lands after READ and must not regress it.
	require.NoError(t, b.msgr.AckDelivered(ctx, bob, conv, sent.ID))

	msgs, err = a.engine.LoadConversation(ctx, alice, bob)
	require.NoError(t, err)
	require.Equal(t, domain.StatusRead, msgs[0].Status)
}

func TestStatusFlow_SenderAckDoesNotCount(t *testing.T) {
	ctx := context.Background()
	a, _, _ := setup(t)

	sent, err := a.msgr.Send(ctx, alice, bob, "hi")
	require.NoError(t, err)

	// The sender acking its own message is ignored by the state machine.
	require.NoError(t, a.msgr.AckDelivered(ctx, alice, sent.ConversationID, sent.ID))

	msgs, err := a.engine.LoadConversation(ctx, alice, bob)
	require.NoError(t, err)
	require.Equal(t, domain.StatusSent, msgs[0].Status)
}

func TestEdit_BothSidesSeeReplacement(t *testing.T) {
	ctx := context.Background()
	a, b, _ := setup(t)

	sent, err := a.msgr.Send(ctx, alice, bob, "teh typo")
	require.NoError(t, err)
	require.NoError(t, a.msgr.Edit(ctx, alice, bob, sent.ConversationID, sent.ID, "the typo"))

	for _, p := range []*party{a, b} {
		msgs, err := p.engine.LoadConversation(ctx, p.addr, other(p.addr))
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		require.True(t, msgs[0].Edited)
		require.Equal(t, "the typo", msgs[0].Content, "party %s", p.addr)
		require.NotEmpty(t, msgs[0].Ciphertext)
	}
}

func TestDelete_TombstonePreservesRecord(t *testing.T) {
	ctx := context.Background()
	a, b, _ := setup(t)

	sent, err := a.msgr.Send(ctx, alice, bob, "retract me")
	require.NoError(t, err)
	require.NoError(t, a.msgr.Delete(ctx, alice, sent.ConversationID, sent.ID))

	msgs, err := b.engine.LoadConversation(ctx, bob, alice)
	require.NoError(t, err)
	require.Len(t, msgs, 1, "deleted messages stay in the timeline")
	require.True(t, msgs[0].Deleted)
}

func TestReactions_VisibleToBothAndIdempotent(t *testing.T) {
	ctx := context.Background()
	a, b, _ := setup(t)

	sent, err := a.msgr.Send(ctx, alice, bob, "news!")
	require.NoError(t, err)

	require.NoError(t, b.msgr.React(ctx, bob, sent.ConversationID, sent.ID, "🎉"))
	require.NoError(t, b.msgr.React(ctx, bob, sent.ConversationID, sent.ID, "🎉"))
	require.NoError(t, a.msgr.React(ctx, alice, sent.ConversationID, sent.ID, "🎉"))

	msgs, err := a.engine.LoadConversation(ctx, alice, bob)
	require.NoError(t, err)
	require.Len(t, msgs[0].Reactions, 2)
}

func TestSubscribe_DeliversSnapshotsUntilCancelled(t *testing.T) {
	ctx := context.Background()
	a, b, _ := setup(t)

	snapshots := make(chan []domain.Message, 8)
	sub, err := b.engine.Subscribe(ctx, bob, alice, func(msgs []domain.Message) {
		snapshots <- msgs
	})
	require.NoError(t, err)

	_, err = a.msgr.Send(ctx, alice, bob, "ping")
	require.NoError(t, err)

	select {
	case msgs := <-snapshots:
		require.NotEmpty(t, msgs)
		require.Equal(t, "ping", msgs[len(msgs)-1].Content)
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot delivered")
	}

	sub.Cancel()
	sub.Cancel() // idempotent

	_, err = a.msgr.Send(ctx, alice, bob, "after cancel")
	require.NoError(t, err)

	select {
	case <-snapshots:
		t.Fatal("snapshot delivered after cancel")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubscribe_IgnoresOtherConversations(t *testing.T) {
	ctx := context.Background()
	mem := ledger.NewMemory()
	a := newParty(t, mem, alice)
	b := newParty(t, mem, bob)
	newParty(t, mem, "0xcarol")

	snapshots := make(chan []domain.Message, 8)
	sub, err := b.engine.Subscribe(ctx, bob, alice, func(msgs []domain.Message) {
		snapshots <- msgs
	})
	require.NoError(t, err)
	defer sub.Cancel()

	// Chatter between alice and carol must not wake bob's watch.
	_, err = a.msgr.Send(ctx, alice, "0xcarol", "side channel")
	require.NoError(t, err)

	select {
	case <-snapshots:
		t.Fatal("snapshot for an unrelated conversation")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestOnline_PresenceWindow(t *testing.T) {
	engine := syncengine.New(ledger.NewMemory(), nil, nil, nil)
	now := time.Unix(10_000, 0)

	require.False(t, engine.Online(domain.Contact{}, now), "never seen")
	require.True(t, engine.Online(domain.Contact{LastSeen: now.Unix() - 10}, now))
	require.True(t, engine.Online(domain.Contact{LastSeen: now.Unix() - 299}, now))
	require.False(t, engine.Online(domain.Contact{LastSeen: now.Unix() - 300}, now))
	require.False(t, engine.Online(domain.Contact{LastSeen: now.Unix() - 10_000}, now))
}

func other(a domain.Address) domain.Address {
	if a == alice {
		return bob
	}
	return alice
}
