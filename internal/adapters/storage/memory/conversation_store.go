package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ncolombo/taskpilot/internal/domain"
)

// ConversationStore is an in-memory implementation of
// domain.ConversationStore.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[domain.ConversationID]*domain.Conversation
	messages      map[domain.ConversationID][]*domain.Message
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		conversations: make(map[domain.ConversationID]*domain.Conversation),
		messages:      make(map[domain.ConversationID][]*domain.Message),
	}
}

func (s *ConversationStore) CreateConversation(ctx context.Context, owner domain.OwnerID) (*domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := &domain.Conversation{
		ID:        domain.ConversationID(domain.NewID()),
		OwnerID:   owner,
		CreatedAt: time.Now().UTC(),
	}
	s.conversations[conv.ID] = conv

	cp := *conv
	return &cp, nil
}

func (s *ConversationStore) AppendMessage(ctx context.Context, msg *domain.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[msg.ConversationID]; !ok {
		return domain.E(domain.KindNotFound, "conversation not found")
	}

	cp := *msg
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], &cp)
	return nil
}

// History returns the conversation's messages in insertion order.
// A conversation owned by someone else is reported exactly like a
// missing one.
func (s *ConversationStore) History(ctx context.Context, id domain.ConversationID, owner domain.OwnerID) ([]*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok || conv.OwnerID != owner {
		return nil, domain.E(domain.KindNotFound, "conversation not found")
	}

	msgs := s.messages[id]
	out := make([]*domain.Message, 0, len(msgs))
	for _, m := range msgs {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}
