// Package agent maps one user utterance onto at most one validated,
// owner-authorized tool invocation and renders the reply.
package agent

import (
	"context"
	"strings"

	"github.com/ncolombo/taskpilot/internal/app/tools"
	"github.com/ncolombo/taskpilot/internal/domain"
	"github.com/ncolombo/taskpilot/internal/observability"
)

// Orchestrator runs one turn: prompt the reasoning collaborator with
// the tool schemas and the conversation so far, execute the selected
// tool, render the reply. It holds only immutable configuration and
// is safe to share across concurrent turns.
type Orchestrator struct {
	llm     domain.ReasoningClient
	runner  *tools.Runner
	schemas []domain.ToolSchema
}

func New(llm domain.ReasoningClient, runner *tools.Runner) *Orchestrator {
	return &Orchestrator{
		llm:     llm,
		runner:  runner,
		schemas: tools.Schemas(),
	}
}

// TurnInput is one user utterance plus its prior context.
type TurnInput struct {
	Owner   domain.OwnerID
	History []*domain.Message
	Message string
}

// RunTurn produces the assistant reply for one turn. Failures past
// context load degrade to an apologetic sentence; RunTurn itself only
// errors on programmer mistakes, never on tool or model failures.
func (o *Orchestrator) RunTurn(ctx context.Context, in TurnInput) string {
	log := observability.LoggerFromContext(ctx).With("owner_id", in.Owner)

	reply, err := o.llm.Complete(ctx, systemPrompt, in.History, in.Message, o.schemas)
	if err != nil {
		log.Error("reasoning service failed", "error", err)
		return renderReasoningFailure(err)
	}

	if len(reply.Invocations) == 0 {
		if text := strings.TrimSpace(reply.Text); text != "" {
			return text
		}
		return fallbackReply
	}

	// single tool per turn: only the first invocation is honored
	inv := reply.Invocations[0]
	log.Info("tool selected", "tool", inv.Name)

	call, err := tools.DecodeCall(inv, in.Owner)
	if err != nil {
		log.Warn("tool call rejected", "tool", inv.Name, "error", err)
		return renderFailure(err)
	}

	res, err := o.runner.Execute(ctx, call)
	if err != nil {
		log.Warn("tool execution failed", "tool", inv.Name, "error", err)
		return renderFailure(err)
	}

	log.Info("tool executed", "tool", inv.Name, "status", res.Status)
	return renderResult(call.Kind, res)
}
