// Package cond compiles condition predicates from expression strings, so
// conditional rule alternatives can be authored as data alongside the rules
// themselves. Expressions see two variables: parent (the value's container)
// and value (the candidate itself).
package cond

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	treeval "github.com/reoring/treeval"
)

// Compile turns an expression like "value > 100" or "len(parent) == 2" into
// a ConditionFunc. A compile failure is reported immediately; runtime
// evaluation failures and non-boolean results count as the condition not
// holding.
func Compile(src string) (treeval.ConditionFunc, error) {
	prog, err := expr.Compile(src, expr.Env(map[string]any{}), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("cond: compile %q: %w", src, err)
	}
	return func(parent, value any) bool {
		out, err := run(prog, parent, value)
		if err != nil {
			return false
		}
		b, ok := out.(bool)
		return ok && b
	}, nil
}

// MustCompile is Compile for static expressions; it panics on error.
func MustCompile(src string) treeval.ConditionFunc {
	fn, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return fn
}

// CompileAll compiles a name -> expression mapping into the shape
// Options.Conditions expects.
func CompileAll(exprs map[string]string) (map[string]treeval.ConditionFunc, error) {
	out := make(map[string]treeval.ConditionFunc, len(exprs))
	for name, src := range exprs {
		fn, err := Compile(src)
		if err != nil {
			return nil, fmt.Errorf("cond: condition %q: %w", name, err)
		}
		out[name] = fn
	}
	return out, nil
}

func run(prog *vm.Program, parent, value any) (any, error) {
	return expr.Run(prog, map[string]any{
		"parent": parent,
		"value":  value,
	})
}
