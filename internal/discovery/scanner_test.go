package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ptc/internal/domain"
)

func mustGlobs(t *testing.T, patterns ...string) []*Matcher {
	t.Helper()
	matchers, err := CompileGlobs(patterns)
	if err != nil {
		t.Fatalf("compile globs: %v", err)
	}
	return matchers
}

func writeTree(t *testing.T, root string, files []string) {
	t.Helper()
	for _, file := range files {
		fullPath := filepath.Join(root, file)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", file, err)
		}
		if err := os.WriteFile(fullPath, []byte("# test"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}
}

func TestScanner_Scan(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "ptc-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	writeTree(t, tmpDir, []string{
		"tests/test_api.py",
		"tests/test_models.py",
		"tests/unit/test_utils.py",
		"tests/helpers.py",
		"venv/test_fake.py",
		"venv/lib/test_deep.py",
		"__pycache__/test_cached.py",
		"readme.md",
	})

	scanner := NewScanner(
		mustGlobs(t, "test_*.py"),
		mustGlobs(t, "venv", "__pycache__"),
	)

	t.Run("finds matching files outside excluded subtrees", func(t *testing.T) {
		files, _, err := scanner.Scan([]string{tmpDir})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 3 {
			t.Errorf("expected 3 test files, got %d: %v", len(files), files)
		}
		for _, f := range files {
			if strings.Contains(f, "venv") || strings.Contains(f, "__pycache__") {
				t.Errorf("excluded path leaked into results: %s", f)
			}
		}
	})

	t.Run("overlapping roots yield each file once", func(t *testing.T) {
		files, _, err := scanner.Scan([]string{tmpDir, filepath.Join(tmpDir, "tests")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen := make(map[string]int)
		for _, f := range files {
			abs, _ := filepath.Abs(f)
			seen[abs]++
		}
		for path, count := range seen {
			if count > 1 {
				t.Errorf("file %s appeared %d times", path, count)
			}
		}
		if len(files) != 3 {
			t.Errorf("expected 3 unique files, got %d", len(files))
		}
	})

	t.Run("empty root list is a configuration error", func(t *testing.T) {
		_, _, err := scanner.Scan(nil)
		var cfgErr *domain.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigError, got %v", err)
		}
	})

	t.Run("missing root is a configuration error", func(t *testing.T) {
		_, _, err := scanner.Scan([]string{filepath.Join(tmpDir, "does-not-exist")})
		var cfgErr *domain.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigError, got %v", err)
		}
	})

	t.Run("file as root is a configuration error", func(t *testing.T) {
		_, _, err := scanner.Scan([]string{filepath.Join(tmpDir, "readme.md")})
		var cfgErr *domain.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigError, got %v", err)
		}
	})

	t.Run("missing root fails before any traversal", func(t *testing.T) {
		files, _, err := scanner.Scan([]string{tmpDir, filepath.Join(tmpDir, "nope")})
		if err == nil {
			t.Fatal("expected error")
		}
		if files != nil {
			t.Errorf("expected no partial results, got %v", files)
		}
	})
}

func TestScanner_Warnings(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "ptc-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	writeTree(t, tmpDir, []string{"tests/test_api.py"})
	if err := os.MkdirAll(filepath.Join(tmpDir, "empty"), 0755); err != nil {
		t.Fatal(err)
	}

	scanner := NewScanner(
		mustGlobs(t, "test_*.py"),
		mustGlobs(t, "venv"),
	)

	t.Run("empty root warns but does not abort", func(t *testing.T) {
		files, warnings, err := scanner.Scan([]string{filepath.Join(tmpDir, "tests"), filepath.Join(tmpDir, "empty")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 1 {
			t.Errorf("expected 1 file, got %d", len(files))
		}
		found := false
		for _, w := range warnings {
			if strings.Contains(w, "empty") && strings.Contains(w, "no test files") {
				found = true
			}
		}
		if !found {
			t.Errorf("expected warning about empty root, got %v", warnings)
		}
	})

	t.Run("unmatched exclusion glob warns", func(t *testing.T) {
		_, warnings, err := scanner.Scan([]string{filepath.Join(tmpDir, "tests")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		found := false
		for _, w := range warnings {
			if strings.Contains(w, "venv") && strings.Contains(w, "matched nothing") {
				found = true
			}
		}
		if !found {
			t.Errorf("expected warning about unmatched exclusion, got %v", warnings)
		}
	})
}

func TestScanner_DeterministicOrder(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "ptc-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	writeTree(t, tmpDir, []string{
		"b/test_b.py",
		"a/test_a.py",
		"test_root.py",
	})

	scanner := NewScanner(mustGlobs(t, "test_*.py"), nil)

	first, _, err := scanner.Scan([]string{tmpDir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _, err := scanner.Scan([]string{tmpDir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("order differs at %d: %s vs %s", i, first[i], second[i])
		}
	}
}
