// Package chat implements the turn service behind the chat endpoint:
// resolve or create the conversation, run the agent, persist both
// sides of the exchange.
package chat

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ncolombo/taskpilot/internal/app/agent"
	"github.com/ncolombo/taskpilot/internal/domain"
	"github.com/ncolombo/taskpilot/internal/observability"
)

type Service struct {
	conversations domain.ConversationStore
	orchestrator  *agent.Orchestrator
	now           func() time.Time
}

func NewService(conversations domain.ConversationStore, orchestrator *agent.Orchestrator) *Service {
	return &Service{
		conversations: conversations,
		orchestrator:  orchestrator,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

type TurnInput struct {
	Owner          domain.OwnerID
	ConversationID string // optional; empty means start a new conversation
	Message        string
}

type TurnOutput struct {
	ConversationID   domain.ConversationID
	UserMessage      string
	AssistantMessage string
	History          []*domain.Message
}

// ProcessTurn handles one user-message-in, assistant-message-out
// cycle. A conversation the caller does not own aborts the turn
// before anything is persisted; every later failure degrades to an
// apologetic assistant reply.
func (s *Service) ProcessTurn(ctx context.Context, in TurnInput) (*TurnOutput, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, domain.E(domain.KindInvalidArgument, "message cannot be empty")
	}
	if utf8.RuneCountInString(in.Message) > 10000 {
		return nil, domain.E(domain.KindInvalidArgument, "message cannot exceed 10000 characters")
	}

	log := observability.LoggerFromContext(ctx).With("owner_id", in.Owner)

	var (
		convID  domain.ConversationID
		history []*domain.Message
	)
	if in.ConversationID != "" {
		id, err := domain.ParseConversationID(in.ConversationID)
		if err != nil {
			return nil, domain.E(domain.KindConversationNotFound, "conversation not found or access denied")
		}
		history, err = s.conversations.History(ctx, id, in.Owner)
		if err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.E(domain.KindConversationNotFound, "conversation not found or access denied")
			}
			return nil, err
		}
		convID = id
	} else {
		conv, err := s.conversations.CreateConversation(ctx, in.Owner)
		if err != nil {
			return nil, err
		}
		convID = conv.ID
		log.Info("conversation created", "conversation_id", convID)
	}

	replyText := s.orchestrator.RunTurn(ctx, agent.TurnInput{
		Owner:   in.Owner,
		History: history,
		Message: in.Message,
	})

	// persist user then assistant, in that order, after tool
	// execution so history reflects only confirmed results
	userAt := s.now()
	userMsg := &domain.Message{
		ID:             domain.MessageID(domain.NewID()),
		ConversationID: convID,
		Role:           domain.RoleUser,
		Content:        in.Message,
		CreatedAt:      userAt,
	}
	if err := s.conversations.AppendMessage(ctx, userMsg); err != nil {
		log.Error("failed to append user message", "error", err)
		return nil, err
	}

	assistantAt := s.now()
	if !assistantAt.After(userAt) {
		assistantAt = userAt.Add(time.Nanosecond)
	}
	assistantMsg := &domain.Message{
		ID:             domain.MessageID(domain.NewID()),
		ConversationID: convID,
		Role:           domain.RoleAssistant,
		Content:        replyText,
		CreatedAt:      assistantAt,
	}
	if err := s.conversations.AppendMessage(ctx, assistantMsg); err != nil {
		log.Error("failed to append assistant message", "error", err)
		return nil, err
	}

	full, err := s.conversations.History(ctx, convID, in.Owner)
	if err != nil {
		return nil, err
	}

	log.Info("turn completed", "conversation_id", convID, "history_len", len(full))

	return &TurnOutput{
		ConversationID:   convID,
		UserMessage:      in.Message,
		AssistantMessage: replyText,
		History:          full,
	}, nil
}
