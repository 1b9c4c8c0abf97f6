package tools

import "github.com/ncolombo/taskpilot/internal/domain"

// Schemas returns the wire contract exposed to the reasoning
// collaborator. The collaborator is prompted with these verbatim, so
// names, parameter sets and required lists must stay stable. The
// user_id parameter is part of the contract but its value is always
// replaced server-side before execution.
func Schemas() []domain.ToolSchema {
	return []domain.ToolSchema{
		{
			Name:        "add_task",
			Description: "Create a new todo task for a user. Accepts a task title with optional priority, due date, and tags.",
			Params: []domain.ToolParam{
				{Name: "user_id", Type: "string", Description: "Unique identifier of the user (UUID format)"},
				{Name: "title", Type: "string", Description: "The task title/description (1-500 characters)"},
				{Name: "priority", Type: "string", Description: "Task priority level (default: medium)", Enum: []string{"low", "medium", "high"}},
				{Name: "due_date", Type: "string", Description: "Task due date in ISO format (e.g., 2025-01-25T10:30:00Z)"},
				{Name: "tags", Type: "string", Description: "Task tags/categories (comma-separated)"},
			},
			Required: []string{"user_id", "title"},
		},
		{
			Name:        "list_tasks",
			Description: "Retrieve all tasks for a specific user. Optionally filter by completion status.",
			Params: []domain.ToolParam{
				{Name: "user_id", Type: "string", Description: "Unique identifier of the user (UUID format)"},
				{Name: "filter_completed", Type: "boolean", Description: "Optional filter (true=completed only, false=uncompleted only)"},
			},
			Required: []string{"user_id"},
		},
		{
			Name:        "complete_task",
			Description: "Mark a specific task as completed. Use the task_id from the task list. Idempotent operation - completing an already-completed task succeeds.",
			Params: []domain.ToolParam{
				{Name: "user_id", Type: "string", Description: "Unique identifier of the user (UUID format)"},
				{Name: "task_id", Type: "string", Description: "Unique identifier of the task to complete (UUID format). Get this from the task list shown when listing tasks."},
			},
			Required: []string{"user_id", "task_id"},
		},
		{
			Name:        "delete_task",
			Description: "Permanently delete a specific task. Use the task_id from the task list. This operation cannot be undone.",
			Params: []domain.ToolParam{
				{Name: "user_id", Type: "string", Description: "Unique identifier of the user (UUID format)"},
				{Name: "task_id", Type: "string", Description: "Unique identifier of the task to delete (UUID format). Get this from the task list shown when listing tasks."},
			},
			Required: []string{"user_id", "task_id"},
		},
		{
			Name:        "update_task",
			Description: "Update an existing task's properties (title, completed, priority, due_date, tags). Use to modify task details.",
			Params: []domain.ToolParam{
				{Name: "user_id", Type: "string", Description: "Unique identifier of the user (UUID format)"},
				{Name: "task_id", Type: "string", Description: "Unique identifier of the task to update (UUID format)"},
				{Name: "new_title", Type: "string", Description: "New task title/description (1-500 characters)"},
				{Name: "completed", Type: "boolean", Description: "Task completion status (true/false)"},
				{Name: "priority", Type: "string", Description: "Task priority level", Enum: []string{"low", "medium", "high"}},
				{Name: "due_date", Type: "string", Description: "Task due date in ISO format (e.g., 2025-01-25T10:30:00Z)"},
				{Name: "tags", Type: "string", Description: "Task tags/categories (comma-separated)"},
			},
			Required: []string{"user_id", "task_id"},
		},
	}
}
