package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ncolombo/taskpilot/internal/domain"
)

// TaskStore is an in-memory implementation of domain.TaskStore.
// It is NOT persistent and is only suitable for development / tests.
type TaskStore struct {
	mu      sync.RWMutex
	tasks   map[domain.TaskID]*domain.Task
	byOwner map[domain.OwnerID][]domain.TaskID // insertion order
}

func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks:   make(map[domain.TaskID]*domain.Task),
		byOwner: make(map[domain.OwnerID][]domain.TaskID),
	}
}

func (s *TaskStore) CreateTask(ctx context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.ID]; exists {
		return domain.E(domain.KindStorage, "task id already exists")
	}

	cp := *task
	s.tasks[task.ID] = &cp
	s.byOwner[task.OwnerID] = append(s.byOwner[task.OwnerID], task.ID)
	return nil
}

func (s *TaskStore) ListTasks(ctx context.Context, owner domain.OwnerID, completed *bool, order domain.TaskOrder) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Task, 0)
	for _, id := range s.byOwner[owner] {
		t, ok := s.tasks[id]
		if !ok {
			continue
		}
		if completed != nil && t.Completed != *completed {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}

	if order == domain.OrderCreatedDesc {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out, nil
}

func (s *TaskStore) GetTask(ctx context.Context, owner domain.OwnerID, id domain.TaskID) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok || t.OwnerID != owner {
		return nil, domain.E(domain.KindNotFound, "task not found")
	}
	cp := *t
	return &cp, nil
}

func (s *TaskStore) UpdateTask(ctx context.Context, owner domain.OwnerID, id domain.TaskID, patch domain.TaskPatch) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.OwnerID != owner {
		return nil, domain.E(domain.KindNotFound, "task not found")
	}

	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		due := *patch.DueDate
		t.DueDate = &due
	}
	if patch.Tags != nil {
		t.Tags = *patch.Tags
	}
	t.UpdatedAt = bumpClock(t.UpdatedAt)

	cp := *t
	return &cp, nil
}

func (s *TaskStore) DeleteTask(ctx context.Context, owner domain.OwnerID, id domain.TaskID) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.OwnerID != owner {
		return nil, domain.E(domain.KindNotFound, "task not found")
	}

	delete(s.tasks, id)
	ids := s.byOwner[owner]
	for i, other := range ids {
		if other == id {
			s.byOwner[owner] = append(ids[:i], ids[i+1:]...)
			break
		}
	}

	cp := *t
	return &cp, nil
}
