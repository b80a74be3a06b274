package di

import (
	"github.com/google/uuid"

	"browser-runner/internal/application/port/output"
	"browser-runner/internal/infrastructure/env"
	"browser-runner/internal/infrastructure/logger"
	"browser-runner/internal/runner"
)

type Container struct {
	Config *env.Config
	Logger output.LoggerPort
	Runner *runner.Runner
}

// NewContainer loads the environment once and wires the process. Each
// invocation handles exactly one task, so per-run resources (LLM client,
// browser session) are constructed inside the Runner, not held here.
func NewContainer() *Container {
	cfg := env.Load()

	log := logger.New(cfg.VerboseLogging).WithField("run_id", uuid.NewString())

	return &Container{
		Config: cfg,
		Logger: log,
		Runner: runner.New(cfg, log),
	}
}

func (c *Container) Close() {
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
