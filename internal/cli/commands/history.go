package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ptc/internal/config"
	"ptc/internal/history"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config *config.Config
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config) *HistoryCommand {
	return &HistoryCommand{config: cfg}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	db, err := history.Open(hc.config.GetHistoryPath())
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.RecentRuns(hc.config.Flags.HistoryLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		color.Yellow("No runs recorded yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tDURATION\tWORKERS\tTOTAL\tPASSED\tFAILED\tMARKERS")
	for _, run := range runs {
		markers := run.MarkerExpr
		if markers == "" {
			markers = "-"
		}
		failed := fmt.Sprintf("%d", run.Failed)
		if run.Failed > 0 {
			failed = color.RedString("%d", run.Failed)
		}
		fmt.Fprintf(w, "%d\t%s\t%.2fs\t%d\t%d\t%s\t%s\t%s\n",
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.DurationSeconds,
			run.Workers,
			run.Total,
			color.GreenString("%d", run.Passed),
			failed,
			markers,
		)
	}
	return w.Flush()
}
