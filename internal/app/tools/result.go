package tools

import (
	"time"

	"github.com/ncolombo/taskpilot/internal/domain"
)

// TaskView is the flat wire shape of one task inside a tool result.
// Timestamps are RFC 3339 strings so the record round-trips through
// conversation history without schema negotiation.
type TaskView struct {
	TaskID    string `json:"task_id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Priority  string `json:"priority"`
	DueDate   string `json:"due_date,omitempty"`
	Tags      string `json:"tags,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Result is the flat structured record every tool returns. Single-
// task tools fill the embedded TaskView and Status; list_tasks fills
// Tasks and Count.
type Result struct {
	Status string `json:"status,omitempty"`
	TaskView

	Tasks []TaskView `json:"tasks,omitempty"`
	Count int        `json:"count,omitempty"`
}

func viewOf(t *domain.Task) TaskView {
	v := TaskView{
		TaskID:    string(t.ID),
		Title:     t.Title,
		Completed: t.Completed,
		Priority:  string(t.Priority),
		Tags:      t.Tags,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if t.DueDate != nil {
		v.DueDate = t.DueDate.UTC().Format(time.RFC3339)
	}
	return v
}
