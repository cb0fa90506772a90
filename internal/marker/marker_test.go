package marker

import "testing"

func TestSet(t *testing.T) {
	set := NewSet([]Marker{
		{Name: "unit"},
		{Name: "integration", Description: "needs services"},
		{Name: "unit"}, // duplicate declaration is folded
	})

	t.Run("declared lookup", func(t *testing.T) {
		if !set.Declared("unit") {
			t.Error("expected unit to be declared")
		}
		if set.Declared("slow") {
			t.Error("did not expect slow to be declared")
		}
	})

	t.Run("duplicates folded, order kept", func(t *testing.T) {
		if set.Len() != 2 {
			t.Fatalf("expected 2 markers, got %d", set.Len())
		}
		list := set.List()
		if list[0].Name != "unit" || list[1].Name != "integration" {
			t.Errorf("unexpected order: %v", list)
		}
	})

	t.Run("undeclared finds first offender", func(t *testing.T) {
		if got := set.Undeclared([]string{"unit", "slow", "nightly"}); got != "slow" {
			t.Errorf("expected slow, got %q", got)
		}
		if got := set.Undeclared([]string{"unit", "integration"}); got != "" {
			t.Errorf("expected no offender, got %q", got)
		}
	})
}

func TestNewTags(t *testing.T) {
	tags := NewTags([]string{"unit", "slow"})
	if !tags["unit"] || !tags["slow"] {
		t.Error("expected both tags present")
	}
	if tags["integration"] {
		t.Error("did not expect integration")
	}
}
