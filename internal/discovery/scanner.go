package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ptc/internal/domain"
)

// Scanner walks root directories depth-first and yields candidate test
// files: files whose name matches an include pattern and that sit
// outside every excluded subtree. Exclusions are checked before
// include patterns; a pruned directory is never inspected at all.
type Scanner struct {
	files    []*Matcher // file-name include patterns
	excludes []*Matcher // relative-path exclusion globs
}

// NewScanner creates a Scanner from compiled include and exclusion
// matchers.
func NewScanner(files, excludes []*Matcher) *Scanner {
	return &Scanner{files: files, excludes: excludes}
}

// Scan walks the given roots in order and returns candidate test
// files. All roots are validated up front: a missing root is a
// configuration error and no subtree is traversed at all. Files
// reachable through more than one root appear once. Warnings cover
// roots that produced no candidates and exclusion globs that never
// matched; neither aborts the scan.
func (s *Scanner) Scan(roots []string) (files []string, warnings []string, err error) {
	if len(roots) == 0 {
		return nil, nil, domain.Configf("no root paths configured")
	}

	for _, root := range roots {
		info, statErr := os.Stat(filepath.Clean(root))
		if statErr != nil {
			return nil, nil, domain.Configf("root path does not exist: %s", root)
		}
		if !info.IsDir() {
			return nil, nil, domain.Configf("root path is not a directory: %s", root)
		}
	}

	matchedExclude := make([]bool, len(s.excludes))
	seen := make(map[string]bool) // absolute paths, dedupes overlapping roots

	for _, root := range roots {
		root = filepath.Clean(root)
		before := len(files)

		walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if rel == "." {
					return nil
				}
				// Skip hidden directories (starting with .)
				if strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				if s.excluded(rel, d.Name(), matchedExclude) {
					return filepath.SkipDir
				}
				return nil
			}

			if s.excluded(rel, d.Name(), matchedExclude) {
				return nil
			}
			if !s.includeFile(d.Name()) {
				return nil
			}
			abs, absErr := filepath.Abs(path)
			if absErr != nil {
				abs = path
			}
			if seen[abs] {
				return nil
			}
			seen[abs] = true
			files = append(files, path)
			return nil
		})
		if walkErr != nil {
			return nil, nil, walkErr
		}

		if len(files) == before {
			warnings = append(warnings, fmt.Sprintf("root %s contains no test files", root))
		}
	}

	for i, m := range s.excludes {
		if !matchedExclude[i] {
			warnings = append(warnings, fmt.Sprintf("exclusion glob %q matched nothing", m.Pattern()))
		}
	}

	return files, warnings, nil
}

// excluded checks a relative path and its base name against every
// exclusion glob, recording which globs have matched. Matching more
// than one glob excludes the path exactly once.
func (s *Scanner) excluded(rel, name string, matched []bool) bool {
	hit := false
	for i, m := range s.excludes {
		if m.Matches(rel) || m.Matches(name) {
			matched[i] = true
			hit = true
		}
	}
	return hit
}

func (s *Scanner) includeFile(name string) bool {
	for _, m := range s.files {
		if m.Matches(name) {
			return true
		}
	}
	return false
}
