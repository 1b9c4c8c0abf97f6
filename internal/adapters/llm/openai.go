package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ncolombo/taskpilot/internal/domain"
)

// OpenAIClient implements domain.ReasoningClient against any
// OpenAI-compatible Chat Completions endpoint (including Gemini's
// compatibility layer) using the tools/function-calling protocol.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

func (c *OpenAIClient) Complete(
	ctx context.Context,
	system string,
	history []*domain.Message,
	userMessage string,
	tools []domain.ToolSchema,
) (*domain.ReasoningReply, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == domain.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
		Tools:    toOpenAITools(tools),
	})
	if err != nil {
		return nil, domain.Wrap(domain.KindReasoning, "openai chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return nil, domain.E(domain.KindReasoning, "openai returned no choices")
	}

	msg := resp.Choices[0].Message
	reply := &domain.ReasoningReply{Text: msg.Content}
	for _, tc := range msg.ToolCalls {
		if tc.Type != openai.ToolTypeFunction {
			continue
		}
		args := map[string]any{}
		if raw := strings.TrimSpace(tc.Function.Arguments); raw != "" {
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				return nil, domain.Wrap(domain.KindReasoning,
					fmt.Sprintf("decode arguments for %s", tc.Function.Name), err)
			}
		}
		reply.Invocations = append(reply.Invocations, domain.ToolInvocation{
			Name: tc.Function.Name,
			Args: args,
		})
	}
	return reply, nil
}

func toOpenAITools(schemas []domain.ToolSchema) []openai.Tool {
	out := make([]openai.Tool, 0, len(schemas))
	for _, s := range schemas {
		props := make(map[string]any, len(s.Params))
		for _, p := range s.Params {
			prop := map[string]any{
				"type":        p.Type,
				"description": p.Description,
			}
			if len(p.Enum) > 0 {
				prop["enum"] = p.Enum
			}
			props[p.Name] = prop
		}
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        s.Name,
				Description: s.Description,
				Parameters: map[string]any{
					"type":       "object",
					"properties": props,
					"required":   s.Required,
				},
			},
		})
	}
	return out
}
