package domain

import (
	"time"

	"github.com/google/uuid"
)

type OwnerID string
type TaskID string
type ConversationID string
type MessageID string

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Priority is the task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Timestamp = time.Time

// NewID generates a fresh entity identity.
func NewID() string {
	return uuid.NewString()
}

// ParseOwnerID validates the owner id format.
func ParseOwnerID(s string) (OwnerID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", E(KindInvalidArgument, "owner id must be a valid UUID")
	}
	return OwnerID(s), nil
}

// ParseTaskID validates the task id format.
func ParseTaskID(s string) (TaskID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", E(KindInvalidArgument, "task id must be a valid UUID")
	}
	return TaskID(s), nil
}

// ParseConversationID validates the conversation id format.
func ParseConversationID(s string) (ConversationID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", E(KindInvalidArgument, "conversation id must be a valid UUID")
	}
	return ConversationID(s), nil
}
