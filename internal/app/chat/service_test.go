package chat_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/ncolombo/taskpilot/internal/adapters/llm"
	"github.com/ncolombo/taskpilot/internal/adapters/storage/memory"
	"github.com/ncolombo/taskpilot/internal/app/agent"
	"github.com/ncolombo/taskpilot/internal/app/chat"
	"github.com/ncolombo/taskpilot/internal/app/tools"
	"github.com/ncolombo/taskpilot/internal/domain"
)

func newService(mock *llm.Mock) *chat.Service {
	runner := tools.NewRunner(memory.NewTaskStore())
	return chat.NewService(memory.NewConversationStore(), agent.New(mock, runner))
}

func TestNewConversationPersistsBothSides(t *testing.T) {
	mock := llm.NewMock()
	mock.Enqueue(&domain.ReasoningReply{Text: "Hello there."})
	svc := newService(mock)
	owner := domain.OwnerID(uuid.NewString())

	out, err := svc.ProcessTurn(context.Background(), chat.TurnInput{
		Owner:   owner,
		Message: "hi",
	})
	if err != nil {
		t.Fatalf("ProcessTurn failed: %v", err)
	}
	if out.ConversationID == "" {
		t.Fatal("a fresh turn must mint a conversation id")
	}
	if out.AssistantMessage != "Hello there." {
		t.Fatalf("unexpected assistant message: %q", out.AssistantMessage)
	}

	if len(out.History) != 2 {
		t.Fatalf("expected user+assistant in history, got %d entries", len(out.History))
	}
	if out.History[0].Role != domain.RoleUser || out.History[0].Content != "hi" {
		t.Fatalf("first entry must be the user message: %+v", out.History[0])
	}
	if out.History[1].Role != domain.RoleAssistant || out.History[1].Content != "Hello there." {
		t.Fatalf("second entry must be the assistant message: %+v", out.History[1])
	}
	if !out.History[1].CreatedAt.After(out.History[0].CreatedAt) {
		t.Fatal("assistant message must sort after the user message")
	}
}

func TestSecondTurnReusesConversation(t *testing.T) {
	mock := llm.NewMock()
	mock.Enqueue(&domain.ReasoningReply{Text: "first reply"})
	mock.Enqueue(&domain.ReasoningReply{Text: "second reply"})
	svc := newService(mock)
	owner := domain.OwnerID(uuid.NewString())

	first, err := svc.ProcessTurn(context.Background(), chat.TurnInput{Owner: owner, Message: "one"})
	if err != nil {
		t.Fatalf("first turn failed: %v", err)
	}

	second, err := svc.ProcessTurn(context.Background(), chat.TurnInput{
		Owner:          owner,
		ConversationID: string(first.ConversationID),
		Message:        "two",
	})
	if err != nil {
		t.Fatalf("second turn failed: %v", err)
	}
	if second.ConversationID != first.ConversationID {
		t.Fatalf("conversation id changed across turns: %s vs %s", first.ConversationID, second.ConversationID)
	}
	if len(second.History) != 4 {
		t.Fatalf("expected 4 messages after two turns, got %d", len(second.History))
	}
	want := []struct {
		role    domain.Role
		content string
	}{
		{domain.RoleUser, "one"},
		{domain.RoleAssistant, "first reply"},
		{domain.RoleUser, "two"},
		{domain.RoleAssistant, "second reply"},
	}
	for i, w := range want {
		if second.History[i].Role != w.role || second.History[i].Content != w.content {
			t.Fatalf("history[%d] = %s %q, want %s %q",
				i, second.History[i].Role, second.History[i].Content, w.role, w.content)
		}
	}
}

func TestForeignConversationAborts(t *testing.T) {
	mock := llm.NewMock()
	mock.Enqueue(&domain.ReasoningReply{Text: "reply"})
	store := memory.NewConversationStore()
	runner := tools.NewRunner(memory.NewTaskStore())
	svc := chat.NewService(store, agent.New(mock, runner))

	alice := domain.OwnerID(uuid.NewString())
	bob := domain.OwnerID(uuid.NewString())

	conv, err := store.CreateConversation(context.Background(), alice)
	if err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	_, err = svc.ProcessTurn(context.Background(), chat.TurnInput{
		Owner:          bob,
		ConversationID: string(conv.ID),
		Message:        "let me in",
	})
	if domain.KindOf(err) != domain.KindConversationNotFound {
		t.Fatalf("expected conversation-not-found, got %v", err)
	}
	if err.Error() != "conversation not found or access denied" {
		t.Fatalf("foreign and missing conversations must read identically, got %q", err.Error())
	}

	// nothing persisted for the aborted turn
	history, err := store.History(context.Background(), conv.ID, alice)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("aborted turn must not persist messages, got %d", len(history))
	}
}

func TestUnknownConversationAborts(t *testing.T) {
	svc := newService(llm.NewMock())

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		_, err := svc.ProcessTurn(context.Background(), chat.TurnInput{
			Owner:          domain.OwnerID(uuid.NewString()),
			ConversationID: id,
			Message:        "hello",
		})
		if domain.KindOf(err) != domain.KindConversationNotFound {
			t.Fatalf("id %q: expected conversation-not-found, got %v", id, err)
		}
	}
}

func TestMessageValidation(t *testing.T) {
	svc := newService(llm.NewMock())
	owner := domain.OwnerID(uuid.NewString())

	for _, msg := range []string{"", "   ", strings.Repeat("x", 10001), strings.Repeat("話", 10001)} {
		_, err := svc.ProcessTurn(context.Background(), chat.TurnInput{Owner: owner, Message: msg})
		if domain.KindOf(err) != domain.KindInvalidArgument {
			t.Fatalf("message %q: expected invalid-argument, got %v", msg[:min(len(msg), 10)], err)
		}
	}

	// multibyte text is bounded by characters, not bytes
	mock := llm.NewMock()
	mock.Enqueue(&domain.ReasoningReply{Text: "understood"})
	wide := newService(mock)
	if _, err := wide.ProcessTurn(context.Background(), chat.TurnInput{
		Owner:   owner,
		Message: strings.Repeat("話", 8000),
	}); err != nil {
		t.Fatalf("8000-character message rejected: %v", err)
	}
}
