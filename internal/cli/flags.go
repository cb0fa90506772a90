package cli

import "ptc/internal/config"

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors:    f.Processors,
		Roots:         f.Roots,
		FilePattern:   f.FilePattern,
		MarkerExpr:    f.MarkerExpr,
		StrictMarkers: f.StrictMarkers,
		FilesOnly:     f.FilesOnly,
		AsJSON:        f.AsJSON,
		FailFast:      f.FailFast,
		OnlyFailed:    f.OnlyFailed,
		OpenFailures:  f.OpenFailures,
		HistoryLimit:  f.HistoryLimit,
	}
}
