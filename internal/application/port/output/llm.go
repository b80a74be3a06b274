package output

import (
	"context"

	"browser-runner/internal/domain/entity"
)

// LLMPort is an opaque handle bound to one provider, model, temperature and
// endpoint. One client is created per run and never shared across runs.
type LLMPort interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type ChatRequest struct {
	Messages []entity.Message
	Tools    []entity.ToolDefinition
}

type ChatResponse struct {
	Message entity.Message
}
