package marker

// Marker is a declared tag: a name plus a free-text description. A
// marker has no enforced semantics beyond being selectable at run time.
type Marker struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Set is the declared marker universe for a project. It is built once
// from configuration and never mutated afterwards.
type Set struct {
	order []Marker
	names map[string]bool
}

// NewSet creates a Set from declared markers, keeping declaration order.
func NewSet(markers []Marker) *Set {
	s := &Set{names: make(map[string]bool)}
	for _, m := range markers {
		if s.names[m.Name] {
			continue
		}
		s.names[m.Name] = true
		s.order = append(s.order, m)
	}
	return s
}

// Declared reports whether the given name is in the declared set.
func (s *Set) Declared(name string) bool {
	return s.names[name]
}

// Undeclared returns the first tag not in the declared set, or "".
func (s *Set) Undeclared(tags []string) string {
	for _, tag := range tags {
		if !s.names[tag] {
			return tag
		}
	}
	return ""
}

// List returns the declared markers in declaration order.
func (s *Set) List() []Marker {
	return s.order
}

// Len returns the number of declared markers.
func (s *Set) Len() int {
	return len(s.order)
}

// Tags is the set of marker names attached to a single test, used as
// the evaluation context for filter expressions.
type Tags map[string]bool

// NewTags builds a Tags set from a slice of marker names.
func NewTags(names []string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = true
	}
	return t
}
