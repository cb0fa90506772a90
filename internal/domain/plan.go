package domain

// PlanEntry is one selected test: a file plus the qualified name of a
// test function, optionally nested inside a test class.
type PlanEntry struct {
	File    string   `json:"file"`              // slash-separated path relative to the project root
	Name    string   `json:"name"`              // "test_func" or "TestClass::test_method"
	Markers []string `json:"markers,omitempty"` // marker tags attached to this test
}

// ID returns the node id for the entry, e.g.
// "backend/tests/test_api.py::test_login".
func (e PlanEntry) ID() string {
	return e.File + "::" + e.Name
}

// HasMarker reports whether the entry carries the given marker tag.
func (e PlanEntry) HasMarker(name string) bool {
	for _, m := range e.Markers {
		if m == name {
			return true
		}
	}
	return false
}

// ExecutionPlan is the deduplicated, order-stable list of tests
// selected for a run. Order is (root order, traversal order,
// declaration order) and is never randomized.
type ExecutionPlan struct {
	Entries []PlanEntry `json:"entries"`
}

// IDs returns the node ids of all entries, in plan order.
func (p *ExecutionPlan) IDs() []string {
	ids := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		ids[i] = e.ID()
	}
	return ids
}

// Files returns the unique files in the plan, in plan order.
func (p *ExecutionPlan) Files() []string {
	seen := make(map[string]bool)
	var files []string
	for _, e := range p.Entries {
		if !seen[e.File] {
			seen[e.File] = true
			files = append(files, e.File)
		}
	}
	return files
}
