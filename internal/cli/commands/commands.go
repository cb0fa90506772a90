package commands

import (
	"ptc/internal/cli"
	"ptc/internal/config"
	"ptc/internal/execution"
	"ptc/internal/parser"
	"ptc/internal/storage"
	"ptc/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Collect  *CollectCommand
	Run      *RunCommand
	Markers  *MarkersCommand
	Failures *FailuresCommand
	History  *HistoryCommand
}

// NewCommands creates all commands with dependencies. The Collector
// itself is built per invocation, after flags are applied, because
// pattern and expression compilation belongs to configuration load.
func NewCommands(cfg *config.Config) *Commands {
	runner := execution.NewRunner(cfg)
	executor := execution.NewWorkerPool(cfg, runner)
	pytestParser := parser.NewPytestParser()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	failureViewer := ui.NewFailureViewer(cfg, jsonStorage)

	return &Commands{
		Collect:  NewCollectCommand(cfg, formatter),
		Run:      NewRunCommand(cfg, executor, pytestParser, jsonStorage, formatter, failureViewer),
		Markers:  NewMarkersCommand(cfg, formatter),
		Failures: NewFailuresCommand(cfg, jsonStorage, failureViewer),
		History:  NewHistoryCommand(cfg),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		cfg.ApplyFlags(flags.ToConfigFlags())
		return nil
	}

	// Collect command
	collectCmd := &cobra.Command{
		Use:     "collect",
		Aliases: []string{"list"},
		Short:   "Collect tests and print the execution plan",
		Long:    "Walk the configured roots, apply naming rules, exclusions and marker filters, and print the resulting execution plan without running anything",
		RunE:    c.Collect.Execute,
		PreRunE: applyFlags,
	}
	collectCmd.Flags().StringArrayVarP(&flags.Roots, "root", "r", nil, "Root directory to scan (repeatable, overrides config file)")
	collectCmd.Flags().StringVarP(&flags.FilePattern, "file-pattern", "f", "", "File name glob identifying test files (e.g. 'test_*.py')")
	collectCmd.Flags().StringVarP(&flags.MarkerExpr, "markers", "m", "", "Marker filter expression (e.g. 'unit and not slow')")
	collectCmd.Flags().BoolVar(&flags.StrictMarkers, "strict-markers", false, "Reject tests carrying undeclared marker tags")
	collectCmd.Flags().BoolVar(&flags.FilesOnly, "files", false, "List only test files, not individual tests")
	collectCmd.Flags().BoolVar(&flags.AsJSON, "json", false, "Print the plan as JSON")
	rootCmd.AddCommand(collectCmd)

	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Collect tests and run them in parallel",
		Long:  "Collect the execution plan and execute every entry with pytest using parallel workers",
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.ApplyFlags(flags.ToConfigFlags())
			return nil
		},
	}
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", config.DefaultProcessors, "Number of processors to use")
	runCmd.Flags().StringArrayVarP(&flags.Roots, "root", "r", nil, "Root directory to scan (repeatable, overrides config file)")
	runCmd.Flags().StringVarP(&flags.FilePattern, "file-pattern", "f", "", "File name glob identifying test files")
	runCmd.Flags().StringVarP(&flags.MarkerExpr, "markers", "m", "", "Marker filter expression (e.g. 'unit and not slow')")
	runCmd.Flags().BoolVar(&flags.StrictMarkers, "strict-markers", false, "Reject tests carrying undeclared marker tags")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first test failure")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only tests that failed in the last run")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// Markers command
	markersCmd := &cobra.Command{
		Use:     "markers",
		Short:   "List declared markers",
		Long:    "Print the declared marker set with descriptions",
		RunE:    c.Markers.Execute,
		PreRunE: applyFlags,
	}
	rootCmd.AddCommand(markersCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last run in an interactive viewer",
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:     "history",
		Short:   "List recent test runs",
		Long:    "Show meta statistics of recent runs recorded in the history database",
		RunE:    c.History.Execute,
		PreRunE: applyFlags,
	}
	historyCmd.Flags().IntVarP(&flags.HistoryLimit, "limit", "n", 10, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
