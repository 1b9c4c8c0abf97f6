// Package task is the REST-facing task service. Unlike the tool
// surface it lists newest-first.
package task

import (
	"context"
	"time"

	"github.com/ncolombo/taskpilot/internal/domain"
)

type Service struct {
	store domain.TaskStore
	now   func() time.Time
}

func NewService(store domain.TaskStore) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

type CreateInput struct {
	Title    string
	Priority string
	DueDate  string
	Tags     string
}

func (s *Service) CreateTask(ctx context.Context, owner domain.OwnerID, in CreateInput) (*domain.Task, error) {
	task, err := domain.NewTask(owner, in.Title, in.Priority, in.DueDate, in.Tags, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks returns the owner's tasks in creation-descending order.
func (s *Service) ListTasks(ctx context.Context, owner domain.OwnerID, completed *bool) ([]*domain.Task, error) {
	return s.store.ListTasks(ctx, owner, completed, domain.OrderCreatedDesc)
}

type UpdateInput struct {
	Title     *string
	Completed *bool
	Priority  *string
	DueDate   *string
	Tags      *string
}

func (s *Service) UpdateTask(ctx context.Context, owner domain.OwnerID, taskID string, in UpdateInput) (*domain.Task, error) {
	id, err := domain.ParseTaskID(taskID)
	if err != nil {
		return nil, err
	}

	var patch domain.TaskPatch
	if in.Title != nil {
		title, err := domain.ValidateTitle(*in.Title)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	if in.Completed != nil {
		patch.Completed = in.Completed
	}
	if in.Priority != nil {
		prio, err := domain.ParsePriority(*in.Priority)
		if err != nil {
			return nil, err
		}
		patch.Priority = &prio
	}
	if in.DueDate != nil {
		due, err := domain.ParseDueDate(*in.DueDate)
		if err != nil {
			return nil, err
		}
		patch.DueDate = due
	}
	if in.Tags != nil {
		patch.Tags = in.Tags
	}
	if patch.IsZero() {
		return nil, domain.E(domain.KindInvalidArgument, "no fields provided to update")
	}

	return s.store.UpdateTask(ctx, owner, id, patch)
}

func (s *Service) DeleteTask(ctx context.Context, owner domain.OwnerID, taskID string) error {
	id, err := domain.ParseTaskID(taskID)
	if err != nil {
		return err
	}
	_, err = s.store.DeleteTask(ctx, owner, id)
	return err
}
