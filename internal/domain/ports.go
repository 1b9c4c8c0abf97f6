package domain

import "context"

// TaskOrder names the two listing behaviors the system relies on:
// the tool surface lists in insertion order, the REST surface lists
// newest-first.
type TaskOrder int

const (
	OrderInsertion TaskOrder = iota
	OrderCreatedDesc
)

// TaskStore defines task persistence. Every operation is scoped by
// owner id; a task that exists under a different owner is
// indistinguishable from one that does not exist.
type TaskStore interface {
	CreateTask(ctx context.Context, task *Task) error
	ListTasks(ctx context.Context, owner OwnerID, completed *bool, order TaskOrder) ([]*Task, error)
	GetTask(ctx context.Context, owner OwnerID, id TaskID) (*Task, error)
	UpdateTask(ctx context.Context, owner OwnerID, id TaskID, patch TaskPatch) (*Task, error)
	// DeleteTask removes the task permanently and returns the deleted
	// snapshot for confirmation messages.
	DeleteTask(ctx context.Context, owner OwnerID, id TaskID) (*Task, error)
}

// ConversationStore defines conversation and message persistence.
// History unifies "does not exist" and "wrong owner" into one
// NotFound outcome.
type ConversationStore interface {
	CreateConversation(ctx context.Context, owner OwnerID) (*Conversation, error)
	AppendMessage(ctx context.Context, msg *Message) error
	History(ctx context.Context, id ConversationID, owner OwnerID) ([]*Message, error)
}

// ToolParam describes one parameter of a tool schema.
type ToolParam struct {
	Name        string
	Type        string // "string" or "boolean"
	Description string
	Enum        []string
}

// ToolSchema is the wire contract for one tool as exposed to the
// reasoning collaborator. Names and required sets must stay stable.
type ToolSchema struct {
	Name        string
	Description string
	Params      []ToolParam
	Required    []string
}

// ToolInvocation is one tool call the reasoning collaborator asked for.
type ToolInvocation struct {
	Name string
	Args map[string]any
}

// ReasoningReply is what the collaborator produced for a turn:
// free text, tool invocations, or both.
type ReasoningReply struct {
	Text        string
	Invocations []ToolInvocation
}

// ReasoningClient defines how the core talks to the external
// function-calling completion service.
type ReasoningClient interface {
	Complete(ctx context.Context, system string, history []*Message, userMessage string, tools []ToolSchema) (*ReasoningReply, error)
}

// IdentityResolver is the authentication collaborator: it turns a
// request credential into a verified owner id. The core trusts the
// result completely.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, credential string) (OwnerID, error)
}
