package cond_test

import (
	"context"
	"testing"

	treeval "github.com/reoring/treeval"
	"github.com/reoring/treeval/cond"
)

func TestCompile(t *testing.T) {
	isBig, err := cond.Compile("value > 100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isBig(nil, 150) {
		t.Fatalf("150 should satisfy value > 100")
	}
	if isBig(nil, 50) {
		t.Fatalf("50 should not satisfy value > 100")
	}
}

func TestCompile_ParentAccess(t *testing.T) {
	fn, err := cond.Compile(`parent.kind == "point"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fn(map[string]any{"kind": "point"}, nil) {
		t.Fatalf("predicate should see the parent container")
	}
	if fn(map[string]any{"kind": "line"}, nil) {
		t.Fatalf("predicate matched the wrong parent")
	}
}

func TestCompile_SyntaxError(t *testing.T) {
	if _, err := cond.Compile("value >"); err == nil {
		t.Fatalf("expected a compile error")
	}
}

func TestCompile_NonBoolResultIsFalse(t *testing.T) {
	fn, err := cond.Compile("value + 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fn(nil, 1) {
		t.Fatalf("non-boolean results must not select an alternative")
	}
}

func TestCompileAll_WiredIntoValidate(t *testing.T) {
	conds, err := cond.CompileAll(map[string]string{"isBig": "value > 100"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rules := treeval.NewRuleMap().
		SetAlts("n",
			&treeval.Rule{Condition: "isBig", Range: &treeval.Range{Min: 101, Max: 1000}},
			&treeval.Rule{Range: &treeval.Range{Min: 0, Max: 100}},
		)
	opts := treeval.Options{Conditions: conds}

	if err := treeval.Validate(context.Background(), map[string]any{"n": 150.0}, rules, opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := treeval.Validate(context.Background(), map[string]any{"n": 1500.0}, rules, opts); err == nil {
		t.Fatalf("1500 exceeds the isBig range and should fail")
	}
}

func TestCompileAll_ReportsBadEntry(t *testing.T) {
	if _, err := cond.CompileAll(map[string]string{"bad": "(("}); err == nil {
		t.Fatalf("expected a compile error")
	}
}
