package input

import (
	"context"

	"browser-runner/internal/domain/entity"
)

// TaskExecutor runs one natural-language task to completion. A nil error with
// a nil History.FinalResult means the step bound was exhausted; whatever the
// run accumulated is still reported through the History.
type TaskExecutor interface {
	Execute(ctx context.Context, task string) (*entity.History, error)
}
