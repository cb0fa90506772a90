package discovery

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Definition is a single collected declaration from a test file: a
// module-level function or a method inside a matching test class,
// together with the marker tags attached to it.
type Definition struct {
	Name    string   // qualified: "test_x" or "TestY::test_x"
	Markers []string // decorator marks plus class and module marks
}

// Parser extracts test definitions from Python source files using the
// configured class and function naming rules.
type Parser struct {
	classes   *Matcher
	functions *Matcher
}

// NewParser creates a Parser from compiled class and function name
// matchers.
func NewParser(classes, functions *Matcher) *Parser {
	return &Parser{classes: classes, functions: functions}
}

var (
	// @pytest.mark.slow / @mark.slow, with or without call arguments
	decoratorPattern = regexp.MustCompile(`^\s*@(?:pytest\.)?mark\.([A-Za-z_]\w*)`)
	// class TestFoo: / class TestFoo(Base):
	classPattern = regexp.MustCompile(`^class\s+([A-Za-z_]\w*)\s*[(:]`)
	// def test_x( / async def test_x(, capturing leading indentation
	defPattern = regexp.MustCompile(`^([ \t]*)(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(`)
	// pytestmark = pytest.mark.unit / pytestmark = [pytest.mark.a, ...]
	moduleMarkPattern = regexp.MustCompile(`^pytestmark\s*=\s*(.+)$`)
	markNamePattern   = regexp.MustCompile(`(?:pytest\.)?mark\.([A-Za-z_]\w*)`)
)

// Parse scans a file line by line and returns its test definitions in
// declaration order. Module-level marks (pytestmark) apply to every
// definition in the file regardless of where the assignment appears.
func (p *Parser) Parse(path string) ([]Definition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test file %s: %w", path, err)
	}

	var defs []Definition
	var moduleMarks []string
	var pending []string // decorator marks waiting for the next def/class
	var class string     // active class name, "" at module level
	var classMarks []string
	classIsTest := false

	for _, line := range strings.Split(string(content), "\n") {
		if m := decoratorPattern.FindStringSubmatch(line); m != nil {
			pending = append(pending, m[1])
			continue
		}
		if m := moduleMarkPattern.FindStringSubmatch(line); m != nil {
			for _, name := range markNamePattern.FindAllStringSubmatch(m[1], -1) {
				moduleMarks = append(moduleMarks, name[1])
			}
			continue
		}
		if m := classPattern.FindStringSubmatch(line); m != nil {
			class = m[1]
			classIsTest = p.classes.Matches(class)
			classMarks = pending
			pending = nil
			continue
		}
		if m := defPattern.FindStringSubmatch(line); m != nil {
			indent, name := m[1], m[2]
			marks := pending
			pending = nil
			if indent == "" {
				// A module-level def ends any open class body.
				class = ""
				classIsTest = false
				if p.functions.Matches(name) {
					defs = append(defs, Definition{Name: name, Markers: mergeMarks(marks, nil)})
				}
				continue
			}
			if class != "" && classIsTest && p.functions.Matches(name) {
				defs = append(defs, Definition{
					Name:    class + "::" + name,
					Markers: mergeMarks(marks, classMarks),
				})
			}
			continue
		}
		// Any other statement in column zero closes the class body.
		if len(line) > 0 && line[0] != ' ' && line[0] != '\t' && line[0] != '#' && line[0] != '@' {
			class = ""
			classIsTest = false
			pending = nil
		}
	}

	if len(moduleMarks) > 0 {
		for i := range defs {
			defs[i].Markers = mergeMarks(defs[i].Markers, moduleMarks)
		}
	}

	return defs, nil
}

// mergeMarks concatenates mark groups preserving order, dropping
// duplicates.
func mergeMarks(groups ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, group := range groups {
		for _, m := range group {
			if seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}
