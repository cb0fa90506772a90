package execution

import (
	"time"

	"ptc/internal/domain"
	"ptc/internal/ui"
)

// Executor executes plan entries and returns results
type Executor interface {
	Execute(entries []domain.PlanEntry) ([]domain.RunResult, time.Duration, error)
	ExecuteWithOptions(entries []domain.PlanEntry, failFast bool) ([]domain.RunResult, time.Duration, error)
	SetProgress(progress *ui.ProgressBar)
}
