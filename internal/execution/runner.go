package execution

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"ptc/internal/config"
	"ptc/internal/domain"
)

// Runner executes a single plan entry with pytest
type Runner struct {
	config  *config.Config
	baseEnv []string
}

// NewRunner creates a new Runner. The project's .env file, when
// present, is folded into the environment of every spawned test
// process.
func NewRunner(cfg *config.Config) *Runner {
	r := &Runner{config: cfg}
	r.baseEnv = os.Environ()
	envPath := filepath.Join(cfg.ProjectPath, ".env")
	if vars, err := godotenv.Read(envPath); err == nil {
		for k, v := range vars {
			r.baseEnv = append(r.baseEnv, k+"="+v)
		}
	}
	return r
}

// Run executes pytest for a single plan entry, passing the entry's
// node id straight through.
func (r *Runner) Run(entry domain.PlanEntry, workerID int) domain.RunResult {
	command := r.config.PytestCommand
	args := append(append([]string{}, command[1:]...), entry.ID())

	ctx := context.Background()
	cmd := exec.CommandContext(ctx, command[0], args...)
	cmd.Dir = r.config.ProjectPath
	cmd.Env = append(append([]string{}, r.baseEnv...),
		fmt.Sprintf("PTC_WORKER=%d", workerID),
		fmt.Sprintf("TEST_DATABASE=%s", r.config.GetWorkerDatabase(workerID)),
	)

	start := time.Now()
	output, err := cmd.CombinedOutput()

	return domain.RunResult{
		TestID:   entry.ID(),
		Success:  err == nil,
		Output:   string(output),
		Error:    err,
		Duration: time.Since(start),
	}
}
