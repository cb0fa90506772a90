package main

import (
	"fmt"
	"os"

	"ptc/internal/cli"
	"ptc/internal/cli/commands"
	"ptc/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "ptc",
		Short:   "Test collector and parallel test processor",
		Long:    `Collects Python tests from configured roots by naming rules, exclusion globs and marker expressions, and executes the resulting plan in parallel with pytest.`,
		Version: version,
	}

	// Create initial config with defaults and the project config file
	cfg := config.New()
	if err := cfg.LoadFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
