package conversation_test

import (
	"testing"

	"ledgerchat/internal/conversation"
	"ledgerchat/internal/domain"
)

const (
	alice = domain.Address("0xaaaa")
	bob   = domain.Address("0xbbbb")
	conv  = domain.ConversationID("c1")
)

func msg(id string, sender, recipient domain.Address) domain.MessageRecord {
	return domain.MessageRecord{
		ID:             id,
		ConversationID: conv,
		Sender:         sender,
		Recipient:      recipient,
		Payload:        "ct-" + id,
	}
}

func TestAppend_InsertionOrderAndDedup(t *testing.T) {
	s := conversation.New(conv)
	s.Append(msg("m1", alice, bob), "first", false)
	s.Append(msg("m2", bob, alice), "second", false)
	s.Append(msg("m1", alice, bob), "replayed", false)

	got := s.Messages()
	if len(got) != 2 {
		t.Fatalf("want 2 messages, got %d", len(got))
	}
	if got[0].ID != "m1" || got[1].ID != "m2" {
		t.Fatalf("order broken: %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].Content != "first" {
		t.Fatalf("replay overwrote content: %q", got[0].Content)
	}
	if got[0].Status != domain.StatusSent {
		t.Fatalf("fresh message should be SENT, got %v", got[0].Status)
	}
}

func TestApplyStatus_MonotonicAdvance(t *testing.T) {
	s := conversation.New(conv)
	s.Append(msg("m1", alice, bob), "hi", false)

	status := func(st domain.Status, actor domain.Address) domain.StatusRecord {
		return domain.StatusRecord{ConversationID: conv, MessageID: "m1", Status: st, Actor: actor}
	}

	s.ApplyStatus(status(domain.StatusRead, bob))
	if got := s.Messages()[0].Status; got != domain.StatusRead {
		t.Fatalf("want READ, got %v", got)
	}

	// Late DELIVERED must not regress READ.
	s.ApplyStatus(status(domain.StatusDelivered, bob))
	if got := s.Messages()[0].Status; got != domain.StatusRead {
		t.Fatalf("status regressed to %v", got)
	}

	// Replaying READ is a no-op.
	s.ApplyStatus(status(domain.StatusRead, bob))
	if got := s.Messages()[0].Status; got != domain.StatusRead {
		t.Fatalf("want READ after replay, got %v", got)
	}
}

func TestApplyStatus_OnlyRecipientCounts(t *testing.T) {
	s := conversation.New(conv)
	s.Append(msg("m1", alice, bob), "hi", false)

	s.ApplyStatus(domain.StatusRecord{ConversationID: conv, MessageID: "m1", Status: domain.StatusRead, Actor: alice})
	if got := s.Messages()[0].Status; got != domain.StatusSent {
		t.Fatalf("sender advanced own message to %v", got)
	}

	// Recipient address comparison is case-insensitive.
	s.ApplyStatus(domain.StatusRecord{ConversationID: conv, MessageID: "m1", Status: domain.StatusDelivered, Actor: domain.Address("0xBBBB")})
	if got := s.Messages()[0].Status; got != domain.StatusDelivered {
		t.Fatalf("want DELIVERED, got %v", got)
	}
}

func TestApplyStatus_UnknownMessage_NoOp(t *testing.T) {
	s := conversation.New(conv)
	s.ApplyStatus(domain.StatusRecord{ConversationID: conv, MessageID: "ghost", Status: domain.StatusRead, Actor: bob})
	if s.Len() != 0 {
		t.Fatal("status on unknown message changed state")
	}
}

func TestApplyReaction_UpsertPerEmojiUser(t *testing.T) {
	s := conversation.New(conv)
	s.Append(msg("m1", alice, bob), "hi", false)

	react := func(emoji string, user domain.Address) domain.ReactionRecord {
		return domain.ReactionRecord{ConversationID: conv, MessageID: "m1", Emoji: emoji, User: user}
	}

	s.ApplyReaction(react("👍", bob))
	s.ApplyReaction(react("👍", bob)) // same pair, replayed
	s.ApplyReaction(react("👍", alice))
	s.ApplyReaction(react("🎉", bob))

	got := s.Messages()[0].Reactions
	if len(got) != 3 {
		t.Fatalf("want 3 distinct reactions, got %d: %v", len(got), got)
	}
}

func TestApplySupersede_EditAndDelete(t *testing.T) {
	s := conversation.New(conv)
	s.Append(msg("m1", alice, bob), "original", false)
	s.Append(msg("m2", alice, bob), "doomed", false)

	s.ApplySupersede(domain.SupersedeRecord{
		ConversationID: conv, MessageID: "m1", Kind: domain.SupersedeEdit, Actor: alice,
	}, "edited", false)
	s.ApplySupersede(domain.SupersedeRecord{
		ConversationID: conv, MessageID: "m2", Kind: domain.SupersedeDelete, Actor: alice,
	}, "", false)

	got := s.Messages()
	if !got[0].Edited || got[0].Content != "edited" {
		t.Fatalf("edit not applied: %+v", got[0])
	}
	if got[0].Ciphertext != "ct-m1" {
		t.Fatal("edit dropped the original ciphertext")
	}
	if !got[1].Deleted {
		t.Fatalf("delete not applied: %+v", got[1])
	}
}

func TestApplySupersede_OnlySenderMay(t *testing.T) {
	s := conversation.New(conv)
	s.Append(msg("m1", alice, bob), "original", false)

	s.ApplySupersede(domain.SupersedeRecord{
		ConversationID: conv, MessageID: "m1", Kind: domain.SupersedeDelete, Actor: bob,
	}, "", false)

	if s.Messages()[0].Deleted {
		t.Fatal("non-sender deleted a message")
	}
}

func TestMessages_SnapshotIsolation(t *testing.T) {
	s := conversation.New(conv)
	s.Append(msg("m1", alice, bob), "hi", false)
	s.ApplyReaction(domain.ReactionRecord{ConversationID: conv, MessageID: "m1", Emoji: "👍", User: bob})

	snap := s.Messages()
	snap[0].Content = "mutated"
	snap[0].Reactions[0].Emoji = "💥"

	fresh := s.Messages()
	if fresh[0].Content != "hi" || fresh[0].Reactions[0].Emoji != "👍" {
		t.Fatal("snapshot mutation leaked into state")
	}
}
