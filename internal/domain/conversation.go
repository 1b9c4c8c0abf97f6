package domain

import (
	"strings"
	"unicode/utf8"
)

// Conversation is a passive container for one owner's message log.
// It is never mutated after creation.
type Conversation struct {
	ID        ConversationID
	OwnerID   OwnerID
	CreatedAt Timestamp
}

// Message is one side of an exchange. Immutable once created.
type Message struct {
	ID             MessageID
	ConversationID ConversationID
	Role           Role
	Content        string
	CreatedAt      Timestamp
}

const maxMessageLen = 10000

// Validate enforces the append-time constraints: a known role and
// non-blank content within bounds.
func (m *Message) Validate() error {
	if m.Role != RoleUser && m.Role != RoleAssistant {
		return Ef(KindInvalidArgument, "role must be %q or %q", RoleUser, RoleAssistant)
	}
	if strings.TrimSpace(m.Content) == "" {
		return E(KindInvalidArgument, "message content cannot be empty")
	}
	if utf8.RuneCountInString(m.Content) > maxMessageLen {
		return E(KindInvalidArgument, "message content cannot exceed 10000 characters")
	}
	return nil
}
