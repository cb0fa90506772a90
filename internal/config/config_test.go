package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}
	if cfg.Processors != DefaultProcessors {
		t.Errorf("expected Processors %d, got %d", DefaultProcessors, cfg.Processors)
	}
	if len(cfg.FilePatterns) != len(DefaultFilePatterns) {
		t.Errorf("expected %d file patterns, got %d", len(DefaultFilePatterns), len(cfg.FilePatterns))
	}
	if cfg.ClassPattern != DefaultClassPattern {
		t.Errorf("expected class pattern %s, got %s", DefaultClassPattern, cfg.ClassPattern)
	}
	if len(cfg.Roots) != 0 {
		t.Errorf("roots must not default to anything, got %v", cfg.Roots)
	}
}

func TestConfig_ApplyFlags(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		check func(t *testing.T, cfg *Config)
	}{
		{
			name:  "processors override",
			flags: Flags{Processors: 8},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Processors != 8 {
					t.Errorf("expected 8 processors, got %d", cfg.Processors)
				}
			},
		},
		{
			name:  "roots override",
			flags: Flags{Roots: []string{"backend/tests"}},
			check: func(t *testing.T, cfg *Config) {
				if len(cfg.Roots) != 1 || cfg.Roots[0] != "backend/tests" {
					t.Errorf("expected roots override, got %v", cfg.Roots)
				}
			},
		},
		{
			name:  "file pattern override replaces defaults",
			flags: Flags{FilePattern: "check_*.py"},
			check: func(t *testing.T, cfg *Config) {
				if len(cfg.FilePatterns) != 1 || cfg.FilePatterns[0] != "check_*.py" {
					t.Errorf("expected single pattern override, got %v", cfg.FilePatterns)
				}
			},
		},
		{
			name:  "strict markers switches on",
			flags: Flags{StrictMarkers: true},
			check: func(t *testing.T, cfg *Config) {
				if !cfg.StrictMarkers {
					t.Error("expected strict markers on")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			cfg.ApplyFlags(tt.flags)
			tt.check(t, cfg)
		})
	}
}

func TestConfig_RootPaths(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = "/project"
	cfg.Roots = []string{"backend/tests", "/absolute/tests"}

	roots := cfg.RootPaths()
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0] != filepath.Join("/project", "backend/tests") {
		t.Errorf("expected project-relative root, got %s", roots[0])
	}
	if roots[1] != "/absolute/tests" {
		t.Errorf("expected absolute root kept, got %s", roots[1])
	}
}

func TestConfig_LoadFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "ptc-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	yamlContent := `roots:
  - backend/tests
  - tests
files:
  - test_*.py
exclude:
  - venv/
  - __pycache__/
strict_markers: true
markers:
  - name: unit
    description: fast isolated tests
  - name: integration
processors: 6
`
	if err := os.WriteFile(filepath.Join(tmpDir, DefaultConfigFile), []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Run("file values applied over defaults", func(t *testing.T) {
		cfg := New()
		cfg.ProjectPath = tmpDir
		if err := cfg.LoadFile(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(cfg.Roots) != 2 || cfg.Roots[0] != "backend/tests" {
			t.Errorf("unexpected roots: %v", cfg.Roots)
		}
		if len(cfg.FilePatterns) != 1 || cfg.FilePatterns[0] != "test_*.py" {
			t.Errorf("unexpected file patterns: %v", cfg.FilePatterns)
		}
		if !cfg.StrictMarkers {
			t.Error("expected strict markers on")
		}
		if len(cfg.Markers) != 2 || cfg.Markers[0].Name != "unit" {
			t.Errorf("unexpected markers: %v", cfg.Markers)
		}
		if cfg.Markers[0].Description != "fast isolated tests" {
			t.Errorf("unexpected marker description: %q", cfg.Markers[0].Description)
		}
		if cfg.Processors != 6 {
			t.Errorf("expected 6 processors, got %d", cfg.Processors)
		}
	})

	t.Run("missing file keeps defaults", func(t *testing.T) {
		cfg := New()
		cfg.ProjectPath = filepath.Join(tmpDir, "elsewhere")
		if err := cfg.LoadFile(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Processors != DefaultProcessors {
			t.Errorf("expected default processors, got %d", cfg.Processors)
		}
	})

	t.Run("unparseable file is an error", func(t *testing.T) {
		badDir, err := os.MkdirTemp("", "ptc-test-*")
		if err != nil {
			t.Fatal(err)
		}
		defer os.RemoveAll(badDir)
		if err := os.WriteFile(filepath.Join(badDir, DefaultConfigFile), []byte("roots: ["), 0644); err != nil {
			t.Fatal(err)
		}
		cfg := New()
		cfg.ProjectPath = badDir
		if err := cfg.LoadFile(); err == nil {
			t.Error("expected error for malformed config file")
		}
	})
}

func TestConfig_GetWorkerDatabase(t *testing.T) {
	cfg := New()

	t.Run("default prefix", func(t *testing.T) {
		os.Unsetenv("TEST_DATABASE_PREFIX")
		if name := cfg.GetWorkerDatabase(2); name != "testing_2" {
			t.Errorf("expected testing_2, got %s", name)
		}
	})

	t.Run("prefix from environment", func(t *testing.T) {
		t.Setenv("TEST_DATABASE_PREFIX", "app_test")
		if name := cfg.GetWorkerDatabase(1); name != "app_test_1" {
			t.Errorf("expected app_test_1, got %s", name)
		}
	})
}

func TestConfig_GetOutputPath(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = "/project"

	path := cfg.GetOutputPath()
	if !filepath.IsAbs(path) {
		t.Errorf("expected absolute path, got %s", path)
	}
	want := filepath.Join("/project", DefaultOutputDir, DefaultOutputJSONFile)
	if path != want {
		t.Errorf("expected %s, got %s", want, path)
	}
}
