package tools

import (
	"strings"

	"github.com/ncolombo/taskpilot/internal/domain"
)

// DecodeCall turns a raw invocation from the reasoning collaborator
// into a typed Call. The owner argument is always overwritten with
// the authenticated caller's id: the model's arguments are
// attacker-adjacent and any owner value in them is discarded.
func DecodeCall(inv domain.ToolInvocation, owner domain.OwnerID) (Call, error) {
	kind, ok := KindFromName(inv.Name)
	if !ok {
		return Call{}, domain.Ef(domain.KindInvalidArgument, "unknown tool %q", inv.Name)
	}

	args := inv.Args
	if args == nil {
		args = map[string]any{}
	}

	if missing := missingRequired(kind, args); len(missing) > 0 {
		return Call{}, domain.Ef(domain.KindMissingParameters,
			"missing required parameters: %s", strings.Join(missing, ", "))
	}

	call := Call{Kind: kind}
	switch kind {
	case KindAddTask:
		call.Add = &AddTaskArgs{
			Owner:    owner,
			Title:    stringArg(args, "title"),
			Priority: stringArg(args, "priority"),
			DueDate:  stringArg(args, "due_date"),
			Tags:     stringArg(args, "tags"),
		}
	case KindListTasks:
		call.List = &ListTasksArgs{
			Owner:           owner,
			FilterCompleted: boolArg(args, "filter_completed"),
		}
	case KindCompleteTask:
		call.Complete = &CompleteTaskArgs{
			Owner:  owner,
			TaskID: stringArg(args, "task_id"),
		}
	case KindDeleteTask:
		call.Delete = &DeleteTaskArgs{
			Owner:  owner,
			TaskID: stringArg(args, "task_id"),
		}
	case KindUpdateTask:
		call.Update = &UpdateTaskArgs{
			Owner:     owner,
			TaskID:    stringArg(args, "task_id"),
			NewTitle:  stringArgPtr(args, "new_title"),
			Completed: boolArg(args, "completed"),
			Priority:  stringArgPtr(args, "priority"),
			DueDate:   stringArgPtr(args, "due_date"),
			Tags:      stringArgPtr(args, "tags"),
		}
	}
	return call, nil
}

// requiredParams lists the arguments the model itself must supply.
// The owner id is injected server-side and is never the model's to
// provide.
func requiredParams(k Kind) []string {
	switch k {
	case KindAddTask:
		return []string{"title"}
	case KindCompleteTask, KindDeleteTask, KindUpdateTask:
		return []string{"task_id"}
	default:
		return nil
	}
}

func missingRequired(k Kind, args map[string]any) []string {
	var missing []string
	for _, p := range requiredParams(k) {
		v, ok := args[p]
		if !ok {
			missing = append(missing, p)
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			missing = append(missing, p)
		}
	}
	return missing
}

func stringArg(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func stringArgPtr(m map[string]any, key string) *string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return &s
		}
	}
	return nil
}

func boolArg(m map[string]any, key string) *bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return &b
		}
	}
	return nil
}
