package parser

import (
	"regexp"
	"strconv"
	"strings"

	"ptc/internal/domain"
)

// PytestParser parses pytest terminal output
type PytestParser struct{}

// NewPytestParser creates a new PytestParser
func NewPytestParser() *PytestParser {
	return &PytestParser{}
}

var (
	passedCountPattern = regexp.MustCompile(`(\d+) passed`)
	failedCountPattern = regexp.MustCompile(`(\d+) failed`)
	errorCountPattern  = regexp.MustCompile(`(\d+) error`)

	// short test summary info lines:
	//   FAILED backend/tests/test_api.py::test_login - AssertionError: ...
	//   FAILED backend/tests/test_api.py::TestApi::test_login
	failedLinePattern = regexp.MustCompile(`^FAILED\s+(\S+?)::(\S+?)(?:\s+-\s+(.*))?$`)

	// FAILURES section headers: ____ test_login ____ / ____ TestApi.test_login ____
	sectionPattern = regexp.MustCompile(`^_{3,}\s+(.+?)\s+_{3,}$`)

	// traceback location lines: backend/tests/test_api.py:42: AssertionError
	locationPattern = regexp.MustCompile(`^(\S+\.py):(\d+)(?::.*)?$`)
)

// ParseCounts extracts passed and failed test case counts from pytest
// output. Returns (passed, failed). If parsing fails, falls back to
// (1,0) for success or (0,1) for failure.
func (p *PytestParser) ParseCounts(result domain.RunResult) (passed, failed int) {
	output := result.Output

	if m := passedCountPattern.FindStringSubmatch(output); len(m) >= 2 {
		passed, _ = strconv.Atoi(m[1])
	}
	if m := failedCountPattern.FindStringSubmatch(output); len(m) >= 2 {
		failed, _ = strconv.Atoi(m[1])
	}
	if m := errorCountPattern.FindStringSubmatch(output); len(m) >= 2 {
		errors, _ := strconv.Atoi(m[1])
		failed += errors
	}
	if passed > 0 || failed > 0 {
		return passed, failed
	}

	// Fallback: one case per entry
	if result.Success {
		return 1, 0
	}
	return 0, 1
}

// ParseFailures parses structured failure records from the output of a
// failed run: one record per FAILED summary line, enriched with
// location and traceback from the FAILURES section.
func (p *PytestParser) ParseFailures(result domain.RunResult) []domain.TestFailure {
	lines := strings.Split(result.Output, "\n")

	var failures []domain.TestFailure
	index := make(map[string]bool)
	for _, raw := range lines {
		line := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		m := failedLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id := m[1] + "::" + m[2]
		if index[id] {
			continue
		}
		index[id] = true
		failures = append(failures, domain.TestFailure{
			TestName: m[2],
			FilePath: m[1],
			Message:  m[3],
		})
	}
	if len(failures) == 0 {
		return nil
	}

	// Walk the FAILURES section and attach details to each record.
	current := -1
	for _, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		if m := sectionPattern.FindStringSubmatch(line); m != nil {
			current = findFailure(failures, m[1])
			continue
		}
		if current < 0 {
			continue
		}
		if strings.HasPrefix(line, "=") {
			current = -1
			continue
		}
		trimmed := strings.TrimSpace(line)
		if m := locationPattern.FindStringSubmatch(trimmed); m != nil {
			failures[current].Traceback = append(failures[current].Traceback, trimmed)
			if failures[current].File == "" {
				failures[current].File = m[1]
				failures[current].Line, _ = strconv.Atoi(m[2])
			}
			continue
		}
		if strings.HasPrefix(trimmed, "E ") || trimmed == "E" {
			detail := strings.TrimSpace(strings.TrimPrefix(trimmed, "E"))
			if failures[current].Message == "" {
				failures[current].Message = detail
			} else if detail != "" {
				failures[current].Traceback = append(failures[current].Traceback, detail)
			}
		}
	}

	return failures
}

// findFailure matches a FAILURES section header against a parsed
// record. Headers render class tests as "TestApi.test_login" while
// summary lines use "TestApi::test_login".
func findFailure(failures []domain.TestFailure, header string) int {
	normalized := strings.ReplaceAll(header, ".", "::")
	for i, f := range failures {
		if f.TestName == header || f.TestName == normalized {
			return i
		}
	}
	return -1
}
