package discovery

import (
	"fmt"
	"regexp"
	"strings"

	"ptc/internal/domain"
)

// Matcher matches names against a compiled glob pattern. Compilation
// happens once at configuration load; traversal only ever calls
// Matches, so the matching strategy stays swappable behind it.
type Matcher struct {
	pattern string
	re      *regexp.Regexp
}

// CompileGlob translates a glob into an anchored regular expression.
// Supported syntax: '*' (any run within a path segment), '**' (any run
// across segments), '?' (one character), '[...]' character classes.
// A malformed glob is a configuration error.
func CompileGlob(pattern string) (*Matcher, error) {
	re, err := globToRegexp(pattern)
	if err != nil {
		return nil, domain.Configf("malformed glob %q: %v", pattern, err)
	}
	return &Matcher{pattern: pattern, re: re}, nil
}

// CompileGlobs compiles a list of globs, failing on the first bad one.
func CompileGlobs(patterns []string) ([]*Matcher, error) {
	matchers := make([]*Matcher, 0, len(patterns))
	for _, p := range patterns {
		m, err := CompileGlob(p)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}

// Matches reports whether the whole name matches the pattern.
func (m *Matcher) Matches(name string) bool {
	return m.re.MatchString(name)
}

// Pattern returns the original glob source.
func (m *Matcher) Pattern() string {
	return m.pattern
}

func globToRegexp(glob string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	runes := []rune(glob)
	for i := 0; i < len(runes); i++ {
		switch c := runes[i]; c {
		case '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				b.WriteString(".*")
				i++
			} else {
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString("[^/]")
		case '[':
			j := i + 1
			if j < len(runes) && (runes[j] == '!' || runes[j] == '^') {
				j++
			}
			if j < len(runes) && runes[j] == ']' {
				j++
			}
			for j < len(runes) && runes[j] != ']' {
				j++
			}
			if j >= len(runes) {
				return nil, fmt.Errorf("unclosed character class")
			}
			class := string(runes[i : j+1])
			class = strings.Replace(class, "[!", "[^", 1)
			b.WriteString(class)
			i = j
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}
