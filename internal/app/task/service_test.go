package task_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ncolombo/taskpilot/internal/adapters/storage/memory"
	"github.com/ncolombo/taskpilot/internal/app/task"
	"github.com/ncolombo/taskpilot/internal/domain"
)

func TestListNewestFirst(t *testing.T) {
	store := memory.NewTaskStore()
	svc := task.NewService(store)
	owner := domain.OwnerID(uuid.NewString())
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	for i, title := range []string{"oldest", "middle", "newest"} {
		created, err := domain.NewTask(owner, title, "", "", "", base.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("NewTask(%q) failed: %v", title, err)
		}
		if err := store.CreateTask(ctx, created); err != nil {
			t.Fatalf("CreateTask(%q) failed: %v", title, err)
		}
	}

	list, err := svc.ListTasks(ctx, owner, nil)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	want := []string{"newest", "middle", "oldest"}
	if len(list) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(list))
	}
	for i, w := range want {
		if list[i].Title != w {
			t.Fatalf("list[%d] = %q, want %q", i, list[i].Title, w)
		}
	}
}

func TestCreateValidatesFields(t *testing.T) {
	svc := task.NewService(memory.NewTaskStore())
	owner := domain.OwnerID(uuid.NewString())
	ctx := context.Background()

	cases := []struct {
		name string
		in   task.CreateInput
	}{
		{"blank title", task.CreateInput{Title: "  "}},
		{"bad priority", task.CreateInput{Title: "ok", Priority: "urgent"}},
		{"bad due date", task.CreateInput{Title: "ok", DueDate: "tomorrow"}},
	}
	for _, tc := range cases {
		if _, err := svc.CreateTask(ctx, owner, tc.in); domain.KindOf(err) != domain.KindInvalidArgument {
			t.Fatalf("%s: expected invalid-argument, got %v", tc.name, err)
		}
	}
}

func TestUpdateRejectsBeforeStoreLookup(t *testing.T) {
	svc := task.NewService(memory.NewTaskStore())
	owner := domain.OwnerID(uuid.NewString())
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, owner, task.CreateInput{Title: "stable"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	bad := "not-a-priority"
	if _, err := svc.UpdateTask(ctx, owner, string(created.ID), task.UpdateInput{Priority: &bad}); domain.KindOf(err) != domain.KindInvalidArgument {
		t.Fatalf("expected invalid-argument for bad priority, got %v", err)
	}

	list, err := svc.ListTasks(ctx, owner, nil)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListTasks failed: %v %d", err, len(list))
	}
	if list[0].Priority != domain.PriorityMedium {
		t.Fatalf("rejected update must leave the task untouched, got priority %s", list[0].Priority)
	}
}

func TestUpdateAppliesSparsePatch(t *testing.T) {
	svc := task.NewService(memory.NewTaskStore())
	owner := domain.OwnerID(uuid.NewString())
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, owner, task.CreateInput{Title: "original", Tags: "home"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	done := true
	updated, err := svc.UpdateTask(ctx, owner, string(created.ID), task.UpdateInput{Completed: &done})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if !updated.Completed {
		t.Fatal("completed flag not applied")
	}
	if updated.Title != "original" || updated.Tags != "home" {
		t.Fatalf("untouched fields must survive, got %+v", updated)
	}
}

func TestDeleteForeignTaskLooksMissing(t *testing.T) {
	svc := task.NewService(memory.NewTaskStore())
	alice := domain.OwnerID(uuid.NewString())
	bob := domain.OwnerID(uuid.NewString())
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, alice, task.CreateInput{Title: "private"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if err := svc.DeleteTask(ctx, bob, string(created.ID)); domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("foreign delete must read as not-found, got %v", err)
	}

	list, err := svc.ListTasks(ctx, alice, nil)
	if err != nil || len(list) != 1 {
		t.Fatalf("owner's task must survive a foreign delete: %v %d", err, len(list))
	}
}
