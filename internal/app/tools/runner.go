package tools

import (
	"context"
	"time"

	"github.com/ncolombo/taskpilot/internal/domain"
)

// Runner executes tool calls against the task store. Validation
// order is fixed and short-circuits: owner id format, task id format,
// field constraints, existence/ownership lookup, persistence.
type Runner struct {
	store domain.TaskStore
	now   func() time.Time
}

func NewRunner(store domain.TaskStore) *Runner {
	return &Runner{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Execute runs one decoded call and returns its flat result.
func (r *Runner) Execute(ctx context.Context, call Call) (*Result, error) {
	switch call.Kind {
	case KindAddTask:
		return r.addTask(ctx, call.Add)
	case KindListTasks:
		return r.listTasks(ctx, call.List)
	case KindCompleteTask:
		return r.completeTask(ctx, call.Complete)
	case KindDeleteTask:
		return r.deleteTask(ctx, call.Delete)
	case KindUpdateTask:
		return r.updateTask(ctx, call.Update)
	default:
		return nil, domain.Ef(domain.KindInvalidArgument, "unknown tool kind %d", call.Kind)
	}
}

func (r *Runner) addTask(ctx context.Context, args *AddTaskArgs) (*Result, error) {
	owner, err := domain.ParseOwnerID(string(args.Owner))
	if err != nil {
		return nil, err
	}

	task, err := domain.NewTask(owner, args.Title, args.Priority, args.DueDate, args.Tags, r.now())
	if err != nil {
		return nil, err
	}

	if err := r.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	return &Result{Status: "created", TaskView: viewOf(task)}, nil
}

func (r *Runner) listTasks(ctx context.Context, args *ListTasksArgs) (*Result, error) {
	owner, err := domain.ParseOwnerID(string(args.Owner))
	if err != nil {
		return nil, err
	}

	tasks, err := r.store.ListTasks(ctx, owner, args.FilterCompleted, domain.OrderInsertion)
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, viewOf(t))
	}
	return &Result{Tasks: views, Count: len(views)}, nil
}

func (r *Runner) completeTask(ctx context.Context, args *CompleteTaskArgs) (*Result, error) {
	owner, err := domain.ParseOwnerID(string(args.Owner))
	if err != nil {
		return nil, err
	}
	taskID, err := domain.ParseTaskID(args.TaskID)
	if err != nil {
		return nil, err
	}

	// re-asserting completed=true on a completed task is a no-op
	// mutation, not an error
	completed := true
	task, err := r.store.UpdateTask(ctx, owner, taskID, domain.TaskPatch{Completed: &completed})
	if err != nil {
		return nil, err
	}

	return &Result{Status: "completed", TaskView: viewOf(task)}, nil
}

func (r *Runner) deleteTask(ctx context.Context, args *DeleteTaskArgs) (*Result, error) {
	owner, err := domain.ParseOwnerID(string(args.Owner))
	if err != nil {
		return nil, err
	}
	taskID, err := domain.ParseTaskID(args.TaskID)
	if err != nil {
		return nil, err
	}

	task, err := r.store.DeleteTask(ctx, owner, taskID)
	if err != nil {
		return nil, err
	}

	return &Result{Status: "deleted", TaskView: viewOf(task)}, nil
}

func (r *Runner) updateTask(ctx context.Context, args *UpdateTaskArgs) (*Result, error) {
	owner, err := domain.ParseOwnerID(string(args.Owner))
	if err != nil {
		return nil, err
	}
	taskID, err := domain.ParseTaskID(args.TaskID)
	if err != nil {
		return nil, err
	}

	var patch domain.TaskPatch
	if args.NewTitle != nil {
		title, err := domain.ValidateTitle(*args.NewTitle)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	if args.Completed != nil {
		patch.Completed = args.Completed
	}
	if args.Priority != nil {
		prio, err := domain.ParsePriority(*args.Priority)
		if err != nil {
			return nil, err
		}
		patch.Priority = &prio
	}
	if args.DueDate != nil {
		due, err := domain.ParseDueDate(*args.DueDate)
		if err != nil {
			return nil, err
		}
		patch.DueDate = due
	}
	if args.Tags != nil {
		patch.Tags = args.Tags
	}
	if patch.IsZero() {
		return nil, domain.E(domain.KindInvalidArgument, "no fields provided to update")
	}

	task, err := r.store.UpdateTask(ctx, owner, taskID, patch)
	if err != nil {
		return nil, err
	}

	return &Result{Status: "updated", TaskView: viewOf(task)}, nil
}
