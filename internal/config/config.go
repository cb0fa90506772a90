package config

import (
	"fmt"
	"os"
	"path/filepath"

	"ptc/internal/marker"
)

// Config holds all configuration for the application. It is built once
// at startup (defaults, then ptc.yaml, then flags) and treated as
// immutable for the duration of a run.
type Config struct {
	// Project settings
	ProjectPath string

	// Collection settings
	Roots         []string
	FilePatterns  []string
	ClassPattern  string
	FuncPattern   string
	Excludes      []string
	StrictMarkers bool
	Markers       []marker.Marker

	// Output settings
	OutputJSONFile string
	OutputDir      string
	HistoryDBFile  string

	// Execution settings
	Processors    int
	PytestCommand []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Processors    int
	Roots         []string
	FilePattern   string
	MarkerExpr    string
	StrictMarkers bool
	FilesOnly     bool
	AsJSON        bool
	FailFast      bool
	OnlyFailed    bool
	OpenFailures  bool
	HistoryLimit  int
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		ClassPattern:   DefaultClassPattern,
		FuncPattern:    DefaultFuncPattern,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputDir:      DefaultOutputDir,
		HistoryDBFile:  DefaultHistoryDBFile,
		Processors:     DefaultProcessors,
		Flags:          Flags{Processors: DefaultProcessors},
	}
	cfg.FilePatterns = make([]string, len(DefaultFilePatterns))
	copy(cfg.FilePatterns, DefaultFilePatterns)
	cfg.PytestCommand = make([]string, len(DefaultPytestCommand))
	copy(cfg.PytestCommand, DefaultPytestCommand)
	return cfg
}

// Load creates a config, applies the project config file and flags
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if err := cfg.LoadFile(); err != nil {
		return nil, err
	}
	cfg.ApplyFlags(flags)
	return cfg, nil
}

// ApplyFlags records the parsed flags and applies their overrides.
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	if len(flags.Roots) > 0 {
		c.Roots = flags.Roots
	}
	if flags.FilePattern != "" {
		c.FilePatterns = []string{flags.FilePattern}
	}
	if flags.StrictMarkers {
		c.StrictMarkers = true
	}
}

// RootPaths returns the configured roots resolved against the project
// path, in configuration order.
func (c *Config) RootPaths() []string {
	roots := make([]string, 0, len(c.Roots))
	for _, root := range c.Roots {
		if filepath.IsAbs(root) {
			roots = append(roots, root)
			continue
		}
		roots = append(roots, filepath.Join(c.ProjectPath, root))
	}
	return roots
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and failures always read/write
// the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetHistoryPath returns the full path to the run-history database.
func (c *Config) GetHistoryPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputDir, c.HistoryDBFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetWorkerDatabase returns the test database name for a worker, so
// suites that read TEST_DATABASE can isolate state per processor.
func (c *Config) GetWorkerDatabase(workerID int) string {
	prefix := os.Getenv("TEST_DATABASE_PREFIX")
	if prefix == "" {
		prefix = "testing"
	}
	return fmt.Sprintf("%s_%d", prefix, workerID)
}
