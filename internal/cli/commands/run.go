package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ptc/internal/config"
	"ptc/internal/discovery"
	"ptc/internal/domain"
	"ptc/internal/execution"
	"ptc/internal/history"
	"ptc/internal/parser"
	"ptc/internal/storage"
	"ptc/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	executor  execution.Executor
	parser    *parser.PytestParser
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    *ui.FailureViewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	executor execution.Executor,
	pytestParser *parser.PytestParser,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer *ui.FailureViewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		executor:  executor,
		parser:    pytestParser,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	collector, err := discovery.NewCollector(rc.config)
	if err != nil {
		return err
	}

	plan, warnings, err := collector.Collect()
	if err != nil {
		return err
	}
	rc.formatter.PrintWarnings(warnings)

	entries := plan.Entries
	if rc.config.Flags.OnlyFailed {
		entries, err = rc.selectFailed(entries)
		if err != nil {
			return err
		}
	}

	if len(entries) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	progressBar := ui.NewProgressBar(len(entries))
	rc.executor.SetProgress(progressBar)

	startedAt := time.Now()
	results, duration, err := rc.executor.ExecuteWithOptions(entries, rc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	var failures []domain.TestFailure
	for _, result := range results {
		if !result.Success {
			failures = append(failures, rc.parser.ParseFailures(result)...)
		}
	}

	if err := rc.storage.Save(results, failures, duration, rc.config.Processors, rc.config.Flags.MarkerExpr); err != nil {
		return fmt.Errorf("failed to save run results: %w", err)
	}

	if err := rc.recordHistory(startedAt, duration, results); err != nil {
		color.Yellow("warning: could not record run history: %v", err)
	}

	if err := rc.formatter.PrintMetaStats(); err != nil {
		return err
	}

	if rc.config.Flags.OpenFailures && len(failures) > 0 {
		output, err := rc.storage.Load()
		if err != nil {
			return err
		}
		return rc.viewer.View(output)
	}
	return nil
}

// selectFailed narrows the plan to entries that failed in the last run.
func (rc *RunCommand) selectFailed(entries []domain.PlanEntry) ([]domain.PlanEntry, error) {
	output, err := rc.storage.Load()
	if err != nil {
		return nil, fmt.Errorf("no previous run results: %w", err)
	}

	failed := make(map[string]bool)
	for _, f := range output.Details {
		failed[f.FilePath+"::"+f.TestName] = true
	}

	var selected []domain.PlanEntry
	for _, entry := range entries {
		if failed[entry.ID()] {
			selected = append(selected, entry)
		}
	}
	return selected, nil
}

func (rc *RunCommand) recordHistory(startedAt time.Time, duration time.Duration, results []domain.RunResult) error {
	db, err := history.Open(rc.config.GetHistoryPath())
	if err != nil {
		return err
	}
	defer db.Close()

	passed := 0
	failed := 0
	for _, r := range results {
		if r.Success {
			passed++
		} else {
			failed++
		}
	}

	return db.RecordRun(&history.Run{
		StartedAt:       startedAt,
		DurationSeconds: duration.Seconds(),
		Workers:         rc.config.Processors,
		Total:           len(results),
		Passed:          passed,
		Failed:          failed,
		MarkerExpr:      rc.config.Flags.MarkerExpr,
	})
}
