package anthropicclient

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"

	"browser-runner/internal/application/port/output"
	"browser-runner/internal/domain/entity"
)

var _ output.LLMPort = (*Adapter)(nil)

const maxTokens = 4096

// Adapter drives the Anthropic messages API through langchaingo. Unlike the
// OpenAI adapter there is no substituted temperature default: a nil
// temperature is simply not sent, leaving sampling to the provider.
type Adapter struct {
	llm         *anthropic.LLM
	temperature *float64
	logger      output.LoggerPort
}

type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature *float64
	Logger      output.LoggerPort
}

func New(cfg Config) (*Adapter, error) {
	opts := []anthropic.Option{
		anthropic.WithToken(cfg.APIKey),
		anthropic.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}

	llm, err := anthropic.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("anthropic client init failed: %w", err)
	}

	return &Adapter{
		llm:         llm,
		temperature: cfg.Temperature,
		logger:      cfg.Logger,
	}, nil
}

func (a *Adapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	messages := convertMessages(req.Messages)

	callOpts := []llms.CallOption{llms.WithMaxTokens(maxTokens)}
	if tools := convertTools(req.Tools); len(tools) > 0 {
		callOpts = append(callOpts, llms.WithTools(tools))
	}
	if a.temperature != nil {
		callOpts = append(callOpts, llms.WithTemperature(*a.temperature))
	}

	resp, err := a.llm.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return nil, fmt.Errorf("anthropic completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	return &output.ChatResponse{
		Message: convertChoice(resp.Choices[0]),
	}, nil
}

func convertMessages(messages []entity.Message) []llms.MessageContent {
	result := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		mc := llms.MessageContent{Role: convertRole(msg.Role)}

		switch msg.Role {
		case entity.RoleTool:
			mc.Parts = append(mc.Parts, llms.ToolCallResponse{
				ToolCallID: msg.ToolCallID,
				Name:       msg.Name,
				Content:    msg.Content,
			})
		default:
			if msg.Content != "" {
				mc.Parts = append(mc.Parts, llms.TextPart(msg.Content))
			}
			for _, img := range msg.Images {
				mime := img.MIME
				if mime == "" {
					mime = "image/png"
				}
				mc.Parts = append(mc.Parts, llms.BinaryPart(mime, img.Data))
			}
			for _, tc := range msg.ToolCalls {
				mc.Parts = append(mc.Parts, llms.ToolCall{
					ID:   tc.ID,
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				})
			}
		}

		result = append(result, mc)
	}
	return result
}

func convertRole(role entity.MessageRole) llms.ChatMessageType {
	switch role {
	case entity.RoleSystem:
		return llms.ChatMessageTypeSystem
	case entity.RoleAssistant:
		return llms.ChatMessageTypeAI
	case entity.RoleTool:
		return llms.ChatMessageTypeTool
	default:
		return llms.ChatMessageTypeHuman
	}
}

func convertTools(tools []entity.ToolDefinition) []llms.Tool {
	result := make([]llms.Tool, 0, len(tools))
	for _, t := range tools {
		result = append(result, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return result
}

func convertChoice(choice *llms.ContentChoice) entity.Message {
	result := entity.Message{
		Role:    entity.RoleAssistant,
		Content: choice.Content,
	}

	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		result.ToolCalls = append(result.ToolCalls, entity.ToolCall{
			ID:        tc.ID,
			Name:      tc.FunctionCall.Name,
			Arguments: tc.FunctionCall.Arguments,
		})
	}

	return result
}
