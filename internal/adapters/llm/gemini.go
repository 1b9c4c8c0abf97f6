package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/ncolombo/taskpilot/internal/domain"
)

// GeminiClient implements domain.ReasoningClient on Vertex AI
// (Gemini) through its native function-calling support.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a Gemini-backed reasoning client.
func NewGeminiClient(ctx context.Context, projectID, location, modelName string) (*GeminiClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("project id and location are required for the Gemini client")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

func (c *GeminiClient) Complete(
	ctx context.Context,
	system string,
	history []*domain.Message,
	userMessage string,
	tools []domain.ToolSchema,
) (*domain.ReasoningReply, error) {
	var contents []*genai.Content
	for _, m := range history {
		var role genai.Role = genai.RoleUser
		if m.Role == domain.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	contents = append(contents, genai.NewContentFromText(userMessage, genai.RoleUser))

	temp := float32(0.2)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       &temp,
		Tools:             toGenaiTools(tools),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, contents, cfg)
	if err != nil {
		return nil, domain.Wrap(domain.KindReasoning, "gemini generate content", err)
	}

	reply := &domain.ReasoningReply{Text: resp.Text()}
	for _, fc := range resp.FunctionCalls() {
		reply.Invocations = append(reply.Invocations, domain.ToolInvocation{
			Name: fc.Name,
			Args: fc.Args,
		})
	}
	return reply, nil
}

func toGenaiTools(schemas []domain.ToolSchema) []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(schemas))
	for _, s := range schemas {
		props := make(map[string]*genai.Schema, len(s.Params))
		for _, p := range s.Params {
			ps := &genai.Schema{
				Type:        genaiType(p.Type),
				Description: p.Description,
			}
			if len(p.Enum) > 0 {
				ps.Enum = p.Enum
			}
			props[p.Name] = ps
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        s.Name,
			Description: s.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: props,
				Required:   s.Required,
			},
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func genaiType(t string) genai.Type {
	if t == "boolean" {
		return genai.TypeBoolean
	}
	return genai.TypeString
}
