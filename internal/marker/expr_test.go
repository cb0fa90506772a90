package marker

import (
	"errors"
	"testing"

	"ptc/internal/domain"
)

func declaredSet() *Set {
	return NewSet([]Marker{
		{Name: "unit", Description: "fast, isolated"},
		{Name: "integration", Description: "talks to services"},
		{Name: "slow"},
	})
}

func TestParseExpr_Eval(t *testing.T) {
	tests := []struct {
		name string
		expr string
		tags []string
		want bool
	}{
		{"single marker present", "unit", []string{"unit"}, true},
		{"single marker absent", "unit", []string{"integration"}, false},
		{"and both present", "unit and slow", []string{"unit", "slow"}, true},
		{"and one missing", "unit and slow", []string{"unit"}, false},
		{"or either present", "unit or integration", []string{"integration"}, true},
		{"or both missing", "unit or integration", []string{"slow"}, false},
		{"not excludes", "not slow", []string{"slow"}, false},
		{"not passes", "not slow", []string{"unit"}, true},
		{"and not combination", "unit and not slow", []string{"unit"}, true},
		{"and not rejects tagged", "unit and not slow", []string{"unit", "slow"}, false},
		{"parentheses group or", "(unit or integration) and not slow", []string{"integration"}, true},
		{"and binds tighter than or", "unit or integration and slow", []string{"unit"}, true},
		{"double negation", "not not unit", []string{"unit"}, true},
		{"no tags at all", "not slow", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := ParseExpr(tt.expr, declaredSet())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := expr.Eval(NewTags(tt.tags)); got != tt.want {
				t.Errorf("%q over %v: expected %v, got %v", tt.expr, tt.tags, tt.want, got)
			}
		})
	}
}

func TestParseExpr_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"undeclared marker", "nightly"},
		{"undeclared in compound", "unit and nightly"},
		{"trailing operator", "unit and"},
		{"leading operator", "and unit"},
		{"unbalanced parenthesis", "(unit or slow"},
		{"stray closing parenthesis", "unit)"},
		{"invalid character", "unit && slow"},
		{"empty expression", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExpr(tt.expr, declaredSet())
			if err == nil {
				t.Fatalf("expected error for %q", tt.expr)
			}
			var cfgErr *domain.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected ConfigError, got %T: %v", err, err)
			}
		})
	}
}

func TestParseExpr_String(t *testing.T) {
	expr, err := ParseExpr("unit and not slow", declaredSet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expr.String() != "unit and not slow" {
		t.Errorf("expected original source, got %q", expr.String())
	}
}
