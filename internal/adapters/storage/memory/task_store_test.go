package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ncolombo/taskpilot/internal/adapters/storage/memory"
	"github.com/ncolombo/taskpilot/internal/domain"
)

func newTask(t *testing.T, owner domain.OwnerID, title string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(owner, title, "", "", "", time.Now().UTC())
	if err != nil {
		t.Fatalf("NewTask failed: %v", err)
	}
	return task
}

func TestOwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewTaskStore()

	ownerA := domain.OwnerID(uuid.NewString())
	ownerB := domain.OwnerID(uuid.NewString())

	task := newTask(t, ownerA, "Call mom")
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if _, err := store.GetTask(ctx, ownerB, task.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound for foreign get, got %v", err)
	}
	completed := true
	if _, err := store.UpdateTask(ctx, ownerB, task.ID, domain.TaskPatch{Completed: &completed}); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound for foreign update, got %v", err)
	}
	if _, err := store.DeleteTask(ctx, ownerB, task.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound for foreign delete, got %v", err)
	}

	// the task is untouched for its real owner
	got, err := store.GetTask(ctx, ownerA, task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.Completed {
		t.Fatalf("foreign update must not leak through")
	}
}

func TestListOrders(t *testing.T) {
	ctx := context.Background()
	store := memory.NewTaskStore()
	owner := domain.OwnerID(uuid.NewString())

	base := time.Now().UTC()
	titles := []string{"first", "second", "third"}
	for i, title := range titles {
		task, err := domain.NewTask(owner, title, "", "", "", base.Add(time.Duration(i)*time.Second))
		if err != nil {
			t.Fatalf("NewTask failed: %v", err)
		}
		if err := store.CreateTask(ctx, task); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}

	insertion, err := store.ListTasks(ctx, owner, nil, domain.OrderInsertion)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	for i, title := range titles {
		if insertion[i].Title != title {
			t.Fatalf("insertion order broken: got %q at %d", insertion[i].Title, i)
		}
	}

	newest, err := store.ListTasks(ctx, owner, nil, domain.OrderCreatedDesc)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if newest[0].Title != "third" || newest[2].Title != "first" {
		t.Fatalf("creation-descending order broken: %q ... %q", newest[0].Title, newest[2].Title)
	}
}

func TestListCompletedFilter(t *testing.T) {
	ctx := context.Background()
	store := memory.NewTaskStore()
	owner := domain.OwnerID(uuid.NewString())

	open := newTask(t, owner, "open")
	done := newTask(t, owner, "done")
	for _, task := range []*domain.Task{open, done} {
		if err := store.CreateTask(ctx, task); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}
	completed := true
	if _, err := store.UpdateTask(ctx, owner, done.ID, domain.TaskPatch{Completed: &completed}); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	onlyDone, err := store.ListTasks(ctx, owner, &completed, domain.OrderInsertion)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(onlyDone) != 1 || onlyDone[0].Title != "done" {
		t.Fatalf("completed filter broken: %+v", onlyDone)
	}

	notDone := false
	onlyOpen, err := store.ListTasks(ctx, owner, &notDone, domain.OrderInsertion)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(onlyOpen) != 1 || onlyOpen[0].Title != "open" {
		t.Fatalf("uncompleted filter broken: %+v", onlyOpen)
	}
}

func TestUpdateBumpsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	store := memory.NewTaskStore()
	owner := domain.OwnerID(uuid.NewString())

	task := newTask(t, owner, "bump me")
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	title := "bumped"
	got, err := store.UpdateTask(ctx, owner, task.ID, domain.TaskPatch{Title: &title})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if !got.UpdatedAt.After(task.UpdatedAt) {
		t.Fatalf("updated_at must move forward: %v -> %v", task.UpdatedAt, got.UpdatedAt)
	}
	if got.Title != "bumped" {
		t.Fatalf("patch not applied: %q", got.Title)
	}
	if got.Priority != task.Priority || got.Completed != task.Completed {
		t.Fatalf("untouched fields must survive a sparse patch")
	}
}

func TestDeleteIsPermanent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewTaskStore()
	owner := domain.OwnerID(uuid.NewString())

	task := newTask(t, owner, "ephemeral")
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	snap, err := store.DeleteTask(ctx, owner, task.ID)
	if err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if snap.Title != "ephemeral" {
		t.Fatalf("delete must return the deleted snapshot, got %q", snap.Title)
	}

	if _, err := store.GetTask(ctx, owner, task.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound after delete, got %v", err)
	}
	list, err := store.ListTasks(ctx, owner, nil, domain.OrderInsertion)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("deleted task still listed: %+v", list)
	}
}

func TestDeleteSnapshotIsDetached(t *testing.T) {
	ctx := context.Background()
	store := memory.NewTaskStore()
	owner := domain.OwnerID(uuid.NewString())

	task := newTask(t, owner, "before delete")
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	snap, err := store.DeleteTask(ctx, owner, task.ID)
	if err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	// mutating the returned snapshot must never reach store internals
	snap.Title = "scribbled"
	snap.Completed = true

	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("re-creating the id failed: %v", err)
	}
	got, err := store.GetTask(ctx, owner, task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.Title != "before delete" || got.Completed {
		t.Fatalf("snapshot mutation leaked into the store: %+v", got)
	}
}
