package commands

import (
	"github.com/spf13/cobra"

	"ptc/internal/config"
	"ptc/internal/marker"
	"ptc/internal/ui"
)

// MarkersCommand handles the markers command
type MarkersCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewMarkersCommand creates a new MarkersCommand
func NewMarkersCommand(cfg *config.Config, formatter *ui.Formatter) *MarkersCommand {
	return &MarkersCommand{
		config:    cfg,
		formatter: formatter,
	}
}

// Execute runs the command
func (mc *MarkersCommand) Execute(cmd *cobra.Command, args []string) error {
	mc.formatter.PrintMarkers(marker.NewSet(mc.config.Markers))
	return nil
}
