package agent

import (
	"fmt"
	"strings"

	"github.com/ncolombo/taskpilot/internal/app/tools"
	"github.com/ncolombo/taskpilot/internal/domain"
)

// renderResult turns a structured tool result into one short
// natural-language sentence, per tool, deterministically.
func renderResult(kind tools.Kind, res *tools.Result) string {
	switch kind {
	case tools.KindAddTask:
		return fmt.Sprintf("I've added the task '%s' to your todo list.", res.Title)

	case tools.KindListTasks:
		if res.Count == 0 {
			return "You don't have any tasks yet. You can ask me to add one!"
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Here are your %d task(s):\n", res.Count)
		for i, t := range res.Tasks {
			b.WriteString(formatTaskLine(i, t))
			b.WriteString("\n")
		}
		b.WriteString("\nTip: Refer to tasks by number or use the full ID.")
		return b.String()

	case tools.KindCompleteTask:
		return fmt.Sprintf("I've marked the task '%s' as completed.", res.Title)

	case tools.KindDeleteTask:
		return fmt.Sprintf("I've deleted the task '%s'.", res.Title)

	case tools.KindUpdateTask:
		return fmt.Sprintf("I've updated the task to: '%s'.", res.Title)

	default:
		return "I've processed your request."
	}
}

// formatTaskLine renders one entry of the numbered listing. The full
// id rides along so later turns can reference the task without any
// server-side ordinal resolution.
func formatTaskLine(index int, t tools.TaskView) string {
	status := "○"
	if t.Completed {
		status = "✓"
	}

	var details []string
	if t.Priority != "" && t.Priority != string(domain.PriorityMedium) {
		details = append(details, "Priority: "+t.Priority)
	}
	if t.DueDate != "" {
		details = append(details, "Due: "+t.DueDate)
	}
	if t.Tags != "" {
		details = append(details, "Tags: "+t.Tags)
	}

	line := fmt.Sprintf("%d. %s %s\n   (ID: %s)", index+1, status, t.Title, t.TaskID)
	if len(details) > 0 {
		line += "\n   [" + strings.Join(details, " | ") + "]"
	}
	return line
}

// renderFailure converts any tool-layer failure into the apologetic
// sentence shown to the user. Raw error codes never surface here.
func renderFailure(err error) string {
	return fmt.Sprintf("Sorry, I encountered an error: %s", err.Error())
}

func renderReasoningFailure(err error) string {
	return fmt.Sprintf("I encountered an error processing your request: %s", err.Error())
}

const fallbackReply = "I understand. How can I help you with your tasks?"
