// Package runner owns one request/one response invocation: request parsing,
// client and session construction, the agent run, result normalization and
// the teardown guarantee.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"browser-runner/internal/adapter/tool"
	"browser-runner/internal/application/port/input"
	"browser-runner/internal/application/port/output"
	"browser-runner/internal/application/service"
	rodbrowser "browser-runner/internal/infrastructure/browser/rod"
	"browser-runner/internal/infrastructure/env"
	"browser-runner/internal/infrastructure/llm"
	"browser-runner/internal/infrastructure/prompts"
	"browser-runner/internal/usecase/executor"
)

// ScreenshotFileName is the fixed capture target inside the output dir.
const ScreenshotFileName = "last.png"

type Runner struct {
	cfg    *env.Config
	logger output.LoggerPort

	// Constructor seams; production wiring is set by New, tests swap in
	// fakes.
	newLLM     func(params llm.Params, cfg *env.Config) (output.LLMPort, error)
	newBrowser func(ctx context.Context, cfg rodbrowser.BrowserConfig) (output.BrowserPort, error)
	newAgent   func(client output.LLMPort, tools output.ToolRegistry, browser output.BrowserPort, logger output.LoggerPort, cfg executor.Config) input.TaskExecutor
}

func New(cfg *env.Config, logger output.LoggerPort) *Runner {
	return &Runner{
		cfg:    cfg,
		logger: logger,
		newLLM: llm.New,
		newBrowser: func(ctx context.Context, bcfg rodbrowser.BrowserConfig) (output.BrowserPort, error) {
			return rodbrowser.NewBrowserAdapter(ctx, bcfg)
		},
		newAgent: func(client output.LLMPort, tools output.ToolRegistry, browser output.BrowserPort, logger output.LoggerPort, ecfg executor.Config) input.TaskExecutor {
			return executor.New(client, tools, browser, logger, ecfg)
		},
	}
}

// Run executes one request end to end and returns the normalized response.
// The browser session, once started, is torn down on every exit path —
// error, panic or success — before any error propagates to the caller.
func (r *Runner) Run(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() {
		if p := recover(); p != nil {
			resp = nil
			err = fmt.Errorf("agent run panicked: %v", p)
		}
	}()

	req.ApplyDefaults(r.cfg)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(req.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	// Client first: a credential problem must surface before any browser
	// process is spawned.
	client, err := r.newLLM(llm.Params{
		Provider:    req.LLMProvider,
		Model:       req.LLMModel,
		Temperature: req.Temperature,
		BaseURL:     req.BaseURL,
		Logger:      r.logger,
	}, r.cfg)
	if err != nil {
		return nil, err
	}

	browserCfg := rodbrowser.DefaultConfig()
	browserCfg.Headless = *req.Headless
	browserCfg.DownloadDir = req.OutputDir
	browserCfg.ExecutablePath = req.ExecutablePath
	browserCfg.UserDataDir = req.UserDataDir

	browser, err := r.newBrowser(ctx, browserCfg)
	if err != nil {
		return nil, fmt.Errorf("browser session start failed: %w", err)
	}
	defer browser.Close()

	registry := service.NewToolRegistry()
	tool.Register(registry, browser, r.logger)

	agent := r.newAgent(client, registry, browser, r.logger, executor.Config{
		SystemPrompt: prompts.SystemPrompt(registry.Definitions()),
		MaxSteps:     req.MaxSteps,
		UseVision:    req.UseVision,
	})

	history, err := agent.Execute(ctx, req.Task)
	if err != nil {
		return nil, fmt.Errorf("agent run failed: %w", err)
	}

	resp = Normalize(history)

	if req.Screenshot {
		path := filepath.Join(req.OutputDir, ScreenshotFileName)
		if err := browser.ScreenshotToFile(ctx, path, req.ScreenshotFullPage); err != nil {
			r.logger.Warn("Screenshot capture failed", "error", err)
			resp.ScreenshotError = err.Error()
		} else {
			resp.ScreenshotPath = path
		}
	}

	return resp, nil
}
