package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ptc/internal/domain"
	"ptc/internal/marker"
)

// fileConfig mirrors the ptc.yaml schema. Zero values mean "keep the
// default"; booleans in the file can only switch a setting on.
type fileConfig struct {
	Roots         []string        `yaml:"roots"`
	Files         []string        `yaml:"files"`
	Classes       string          `yaml:"classes"`
	Functions     string          `yaml:"functions"`
	Exclude       []string        `yaml:"exclude"`
	StrictMarkers bool            `yaml:"strict_markers"`
	Markers       []marker.Marker `yaml:"markers"`
	Processors    int             `yaml:"processors"`
	Pytest        []string        `yaml:"pytest"`
}

// LoadFile applies ptc.yaml from the project root when present. A
// missing file is not an error; a file that does not parse is a
// configuration error.
func (c *Config) LoadFile() error {
	path := filepath.Join(c.ProjectPath, DefaultConfigFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return domain.Configf("parse %s: %v", path, err)
	}

	if len(fc.Roots) > 0 {
		c.Roots = fc.Roots
	}
	if len(fc.Files) > 0 {
		c.FilePatterns = fc.Files
	}
	if fc.Classes != "" {
		c.ClassPattern = fc.Classes
	}
	if fc.Functions != "" {
		c.FuncPattern = fc.Functions
	}
	if len(fc.Exclude) > 0 {
		c.Excludes = fc.Exclude
	}
	if fc.StrictMarkers {
		c.StrictMarkers = true
	}
	if len(fc.Markers) > 0 {
		c.Markers = fc.Markers
	}
	if fc.Processors > 0 {
		c.Processors = fc.Processors
	}
	if len(fc.Pytest) > 0 {
		c.PytestCommand = fc.Pytest
	}
	return nil
}
