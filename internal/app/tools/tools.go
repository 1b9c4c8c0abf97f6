// Package tools implements the five task operations exposed to the
// reasoning collaborator. The set is closed: dispatch is a switch
// over Kind, so an unhandled tool is a compile-time hole rather than
// a runtime lookup failure.
package tools

import "github.com/ncolombo/taskpilot/internal/domain"

type Kind int

const (
	KindAddTask Kind = iota
	KindListTasks
	KindCompleteTask
	KindDeleteTask
	KindUpdateTask
)

func (k Kind) Name() string {
	switch k {
	case KindAddTask:
		return "add_task"
	case KindListTasks:
		return "list_tasks"
	case KindCompleteTask:
		return "complete_task"
	case KindDeleteTask:
		return "delete_task"
	case KindUpdateTask:
		return "update_task"
	default:
		return "unknown"
	}
}

// KindFromName maps a wire tool name back onto the enum.
func KindFromName(name string) (Kind, bool) {
	switch name {
	case "add_task":
		return KindAddTask, true
	case "list_tasks":
		return KindListTasks, true
	case "complete_task":
		return KindCompleteTask, true
	case "delete_task":
		return KindDeleteTask, true
	case "update_task":
		return KindUpdateTask, true
	default:
		return 0, false
	}
}

// AddTaskArgs creates a new task.
type AddTaskArgs struct {
	Owner    domain.OwnerID
	Title    string
	Priority string
	DueDate  string
	Tags     string
}

// ListTasksArgs lists tasks, optionally filtered by completion.
type ListTasksArgs struct {
	Owner           domain.OwnerID
	FilterCompleted *bool
}

// CompleteTaskArgs marks a task completed.
type CompleteTaskArgs struct {
	Owner  domain.OwnerID
	TaskID string
}

// DeleteTaskArgs permanently deletes a task.
type DeleteTaskArgs struct {
	Owner  domain.OwnerID
	TaskID string
}

// UpdateTaskArgs applies a sparse update; nil fields are untouched.
type UpdateTaskArgs struct {
	Owner     domain.OwnerID
	TaskID    string
	NewTitle  *string
	Completed *bool
	Priority  *string
	DueDate   *string
	Tags      *string
}

// Call is the tagged union of the five tool invocations. Exactly one
// argument field matching Kind is set.
type Call struct {
	Kind Kind

	Add      *AddTaskArgs
	List     *ListTasksArgs
	Complete *CompleteTaskArgs
	Delete   *DeleteTaskArgs
	Update   *UpdateTaskArgs
}
