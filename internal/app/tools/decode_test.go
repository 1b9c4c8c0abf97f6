package tools_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/ncolombo/taskpilot/internal/app/tools"
	"github.com/ncolombo/taskpilot/internal/domain"
)

func TestDecodeOverwritesOwner(t *testing.T) {
	caller := domain.OwnerID(uuid.NewString())

	call, err := tools.DecodeCall(domain.ToolInvocation{
		Name: "add_task",
		Args: map[string]any{
			"user_id": uuid.NewString(), // hallucinated, must be discarded
			"title":   "Buy milk",
		},
	}, caller)
	if err != nil {
		t.Fatalf("DecodeCall failed: %v", err)
	}

	if call.Kind != tools.KindAddTask {
		t.Fatalf("wrong kind: %v", call.Kind)
	}
	if call.Add.Owner != caller {
		t.Fatalf("owner must be the authenticated caller, got %q", call.Add.Owner)
	}
}

func TestDecodeMissingParameters(t *testing.T) {
	caller := domain.OwnerID(uuid.NewString())

	_, err := tools.DecodeCall(domain.ToolInvocation{
		Name: "complete_task",
		Args: map[string]any{},
	}, caller)
	if domain.KindOf(err) != domain.KindMissingParameters {
		t.Fatalf("expected MissingParameters, got %v", err)
	}
	if !strings.Contains(err.Error(), "task_id") {
		t.Fatalf("missing parameter must be named: %v", err)
	}

	// blank strings count as missing too
	_, err = tools.DecodeCall(domain.ToolInvocation{
		Name: "add_task",
		Args: map[string]any{"title": "   "},
	}, caller)
	if domain.KindOf(err) != domain.KindMissingParameters {
		t.Fatalf("expected MissingParameters for blank title, got %v", err)
	}
}

func TestDecodeUnknownTool(t *testing.T) {
	_, err := tools.DecodeCall(domain.ToolInvocation{Name: "drop_database"}, domain.OwnerID(uuid.NewString()))
	if !domain.IsInvalidArgument(err) {
		t.Fatalf("expected InvalidArgument for unknown tool, got %v", err)
	}
}

func TestDecodeUpdateSparseFields(t *testing.T) {
	caller := domain.OwnerID(uuid.NewString())

	call, err := tools.DecodeCall(domain.ToolInvocation{
		Name: "update_task",
		Args: map[string]any{
			"task_id":   uuid.NewString(),
			"completed": true,
		},
	}, caller)
	if err != nil {
		t.Fatalf("DecodeCall failed: %v", err)
	}

	args := call.Update
	if args.Completed == nil || !*args.Completed {
		t.Fatalf("completed must decode to true")
	}
	if args.NewTitle != nil || args.Priority != nil || args.DueDate != nil || args.Tags != nil {
		t.Fatalf("absent fields must stay nil: %+v", args)
	}
}
