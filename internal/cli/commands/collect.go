package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ptc/internal/config"
	"ptc/internal/discovery"
	"ptc/internal/ui"
)

// CollectCommand handles the collect command
type CollectCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewCollectCommand creates a new CollectCommand
func NewCollectCommand(cfg *config.Config, formatter *ui.Formatter) *CollectCommand {
	return &CollectCommand{
		config:    cfg,
		formatter: formatter,
	}
}

// Execute runs the command
func (cc *CollectCommand) Execute(cmd *cobra.Command, args []string) error {
	collector, err := discovery.NewCollector(cc.config)
	if err != nil {
		return err
	}

	plan, warnings, err := collector.Collect()
	if err != nil {
		return err
	}

	cc.formatter.PrintWarnings(warnings)

	if cc.config.Flags.AsJSON {
		return cc.formatter.PrintPlanJSON(plan)
	}

	if len(plan.Entries) == 0 {
		color.Yellow("No tests selected")
		return nil
	}

	cc.formatter.PrintPlan(plan, cc.config.Flags.FilesOnly)
	return nil
}
