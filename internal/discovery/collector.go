package discovery

import (
	"path/filepath"
	"strings"

	"ptc/internal/config"
	"ptc/internal/domain"
	"ptc/internal/marker"
)

// Collector runs the full collection pass: scan the configured roots,
// parse every candidate file, enforce strict markers, apply the marker
// filter expression, and produce the final ExecutionPlan.
type Collector struct {
	scanner  *Scanner
	parser   *Parser
	roots    []string
	project  string
	declared *marker.Set
	strict   bool
	filter   *marker.Expr // nil when no marker expression is supplied
}

// NewCollector compiles the configured patterns and the marker filter
// expression. Every configuration error surfaces here, before any
// filesystem traversal.
func NewCollector(cfg *config.Config) (*Collector, error) {
	fileMatchers, err := CompileGlobs(cfg.FilePatterns)
	if err != nil {
		return nil, err
	}
	excludeMatchers, err := CompileGlobs(normalizeExcludes(cfg.Excludes))
	if err != nil {
		return nil, err
	}
	classMatcher, err := CompileGlob(cfg.ClassPattern)
	if err != nil {
		return nil, err
	}
	funcMatcher, err := CompileGlob(cfg.FuncPattern)
	if err != nil {
		return nil, err
	}

	declared := marker.NewSet(cfg.Markers)
	var filter *marker.Expr
	if cfg.Flags.MarkerExpr != "" {
		filter, err = marker.ParseExpr(cfg.Flags.MarkerExpr, declared)
		if err != nil {
			return nil, err
		}
	}

	return &Collector{
		scanner:  NewScanner(fileMatchers, excludeMatchers),
		parser:   NewParser(classMatcher, funcMatcher),
		roots:    cfg.RootPaths(),
		project:  cfg.ProjectPath,
		declared: declared,
		strict:   cfg.StrictMarkers,
		filter:   filter,
	}, nil
}

// Collect produces the ExecutionPlan. Warnings are non-fatal; any
// returned error means no plan at all. Re-running against an unchanged
// tree yields an identical plan.
func (c *Collector) Collect() (*domain.ExecutionPlan, []string, error) {
	files, warnings, err := c.scanner.Scan(c.roots)
	if err != nil {
		return nil, nil, err
	}

	plan := &domain.ExecutionPlan{}
	seen := make(map[string]bool)

	for _, file := range files {
		defs, err := c.parser.Parse(file)
		if err != nil {
			return nil, nil, err
		}
		rel := c.relPath(file)
		for _, def := range defs {
			entry := domain.PlanEntry{File: rel, Name: def.Name, Markers: def.Markers}
			id := entry.ID()
			if seen[id] {
				continue
			}
			seen[id] = true
			if c.strict {
				if bad := c.declared.Undeclared(def.Markers); bad != "" {
					return nil, nil, &domain.StrictMarkerViolation{TestID: id, Marker: bad}
				}
			}
			if c.filter != nil && !c.filter.Eval(marker.NewTags(def.Markers)) {
				continue
			}
			plan.Entries = append(plan.Entries, entry)
		}
	}

	return plan, warnings, nil
}

// relPath renders a scanned path relative to the project root with
// forward slashes, matching the identifier format of the plan.
func (c *Collector) relPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(path))
	}
	projAbs, err := filepath.Abs(c.project)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(path))
	}
	rel, err := filepath.Rel(projAbs, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
		return filepath.ToSlash(filepath.Clean(path))
	}
	return filepath.ToSlash(rel)
}

// normalizeExcludes strips trailing path separators so directory globs
// like "venv/" compare against relative paths.
func normalizeExcludes(globs []string) []string {
	out := make([]string, 0, len(globs))
	for _, g := range globs {
		out = append(out, strings.TrimSuffix(g, "/"))
	}
	return out
}
