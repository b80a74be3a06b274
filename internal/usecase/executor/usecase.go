package executor

import (
	"context"
	"fmt"
	"unicode/utf8"

	"browser-runner/internal/application/port/input"
	"browser-runner/internal/application/port/output"
	"browser-runner/internal/domain/entity"
)

var _ input.TaskExecutor = (*UseCase)(nil)

const maxObservationLen = 20000

type UseCase struct {
	llm          output.LLMPort
	tools        output.ToolRegistry
	browser      output.BrowserPort
	logger       output.LoggerPort
	systemPrompt string
	maxSteps     int
	useVision    bool
}

type Config struct {
	SystemPrompt string
	// MaxSteps bounds the number of action/observation iterations.
	MaxSteps int
	// UseVision attaches a viewport screenshot to each model request.
	UseVision bool
}

func New(
	llm output.LLMPort,
	tools output.ToolRegistry,
	browser output.BrowserPort,
	logger output.LoggerPort,
	cfg Config,
) *UseCase {
	return &UseCase{
		llm:          llm,
		tools:        tools,
		browser:      browser,
		logger:       logger,
		systemPrompt: cfg.SystemPrompt,
		maxSteps:     cfg.MaxSteps,
		useVision:    cfg.UseVision,
	}
}

// Execute runs the tool-calling loop until the model answers without
// requesting a tool, or the step bound is exhausted. Exhaustion is not an
// error: the returned History carries a nil final result plus whatever step
// errors accumulated, and the caller decides how to report that.
func (uc *UseCase) Execute(ctx context.Context, task string) (*entity.History, error) {
	messages := []entity.Message{
		{Role: entity.RoleSystem, Content: uc.systemPrompt},
		{Role: entity.RoleUser, Content: task},
	}

	toolDefs := uc.tools.Definitions()
	history := &entity.History{}

	for step := 1; step <= uc.maxSteps; step++ {
		history.Steps = step
		uc.logger.Debug("Starting step", "step", step, "maxSteps", uc.maxSteps)

		// The screenshot message is transient: it rides along on this
		// request only, so old frames never pile up in the history.
		reqMessages := messages
		if uc.useVision {
			if shot := uc.currentScreenshot(ctx); shot != nil {
				reqMessages = append(append([]entity.Message{}, messages...), *shot)
			}
		}

		resp, err := uc.llm.Chat(ctx, output.ChatRequest{
			Messages: reqMessages,
			Tools:    toolDefs,
		})
		if err != nil {
			return nil, fmt.Errorf("llm request failed: %w", err)
		}

		messages = append(messages, resp.Message)

		if len(resp.Message.ToolCalls) == 0 {
			final := resp.Message.Content
			history.FinalResult = &final
			uc.logger.Info("Task completed", "steps", step)
			return history, nil
		}

		for _, tc := range resp.Message.ToolCalls {
			observation, failed := uc.executeTool(ctx, tc)
			if failed {
				history.Errors = append(history.Errors, observation)
			}

			messages = append(messages, entity.Message{
				Role:       entity.RoleTool,
				ToolCallID: tc.ID,
				Name:       tc.Name,
				Content:    observation,
			})
		}
	}

	// Step budget spent without a final answer. Report what we have.
	uc.logger.Warn("Step bound exhausted without final answer", "maxSteps", uc.maxSteps)
	return history, nil
}

func (uc *UseCase) executeTool(ctx context.Context, tc entity.ToolCall) (observation string, failed bool) {
	tool, ok := uc.tools.Get(entity.ToolName(tc.Name))
	if !ok {
		uc.logger.Warn("Unknown tool called", "name", tc.Name)
		return fmt.Sprintf("Error: unknown tool '%s'", tc.Name), true
	}

	uc.logger.Info("Executing tool", "name", tc.Name, "args", tc.Arguments)

	result, err := tool.Execute(ctx, tc.Arguments)
	if err != nil {
		uc.logger.Error("Tool execution failed", "name", tc.Name, "error", err)
		return "Error: " + err.Error(), true
	}

	if len(result) > maxObservationLen {
		result = truncateObservation(result) + "\n... (truncated)"
	}

	uc.logger.Debug("Tool completed", "name", tc.Name, "resultLen", len(result))
	return result, false
}

// truncateObservation cuts at maxObservationLen, backing up so the cut never
// splits a multi-byte rune.
func truncateObservation(s string) string {
	cut := maxObservationLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// currentScreenshot builds a user message carrying the current viewport. A
// capture failure only costs the model its eyes for one step, so it is
// logged and skipped.
func (uc *UseCase) currentScreenshot(ctx context.Context) *entity.Message {
	if uc.browser == nil {
		return nil
	}
	shot, err := uc.browser.Screenshot(ctx)
	if err != nil {
		uc.logger.Warn("Vision screenshot failed", "error", err)
		return nil
	}
	return &entity.Message{
		Role:    entity.RoleUser,
		Content: "Current page screenshot:",
		Images: []entity.ImageAttachment{{
			MIME: "image/" + shot.Format,
			Data: shot.Data,
		}},
	}
}
