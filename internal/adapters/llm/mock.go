package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/ncolombo/taskpilot/internal/domain"
)

// Mock is a scripted ReasoningClient for tests and local mode.
// Enqueued replies are returned in order; with an empty queue it
// echoes the user message as plain text.
type Mock struct {
	mu      sync.Mutex
	replies []*domain.ReasoningReply
	err     error
	// LastTools records the schemas passed on the most recent call.
	LastTools []domain.ToolSchema
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Enqueue(reply *domain.ReasoningReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, reply)
}

// Fail makes every subsequent call return err.
func (m *Mock) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Mock) Complete(ctx context.Context, system string, history []*domain.Message, userMessage string, tools []domain.ToolSchema) (*domain.ReasoningReply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastTools = tools
	if m.err != nil {
		return nil, m.err
	}
	if len(m.replies) > 0 {
		reply := m.replies[0]
		m.replies = m.replies[1:]
		return reply, nil
	}
	return &domain.ReasoningReply{
		Text: fmt.Sprintf("I heard you say %q. Tell me what you'd like to do with your tasks.", userMessage),
	}, nil
}
