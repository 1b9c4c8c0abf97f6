package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Task is a single todo item owned by exactly one principal.
type Task struct {
	ID        TaskID
	OwnerID   OwnerID
	Title     string
	Completed bool
	Priority  Priority
	DueDate   *time.Time
	Tags      string
	CreatedAt Timestamp
	UpdatedAt Timestamp
}

// TaskPatch is a sparse mutation: only non-nil fields are applied.
type TaskPatch struct {
	Title     *string
	Completed *bool
	Priority  *Priority
	DueDate   *time.Time
	Tags      *string
}

// IsZero reports whether the patch carries no fields.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil && p.Completed == nil && p.Priority == nil &&
		p.DueDate == nil && p.Tags == nil
}

const maxTitleLen = 500

// ValidateTitle trims and checks the 1-500 character constraint.
func ValidateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", E(KindInvalidArgument, "title cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "", E(KindInvalidArgument, "title cannot exceed 500 characters")
	}
	return title, nil
}

// ParsePriority maps a string onto the priority enum.
// An empty string defaults to medium.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	default:
		return "", E(KindInvalidArgument, "priority must be one of [low medium high]")
	}
}

var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDueDate parses an ISO-8601 timestamp, tolerating a missing
// offset and date-only forms the way the reasoning model tends to
// produce them.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, E(KindInvalidArgument, "due_date must be ISO format (e.g., 2025-01-25T10:30:00Z)")
}

// NewTask validates the inputs and assembles a fresh task.
// It is the single construction path shared by the tool layer and
// the REST task service.
func NewTask(owner OwnerID, title, priority, dueDate, tags string, now time.Time) (*Task, error) {
	title, err := ValidateTitle(title)
	if err != nil {
		return nil, err
	}
	prio, err := ParsePriority(priority)
	if err != nil {
		return nil, err
	}
	due, err := ParseDueDate(dueDate)
	if err != nil {
		return nil, err
	}

	return &Task{
		ID:        TaskID(NewID()),
		OwnerID:   owner,
		Title:     title,
		Completed: false,
		Priority:  prio,
		DueDate:   due,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
