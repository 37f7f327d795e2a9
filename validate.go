package treeval

import (
	"context"
	"fmt"

	"github.com/reoring/treeval/i18n"
)

// Validate checks data against rules, depth-first in declaration order, and
// fails on the first violated constraint. The returned error is either
// Issues (the data does not satisfy the rules) or a *ConfigError (the rules
// or options themselves are broken).
//
// With Options.Convert or Options.Filter set, data is mutated in place
// during the same traversal. Mutation is not transactional: conversions and
// prunes applied before a later failure stay in the tree, so callers needing
// atomicity should validate a copy and swap it in on success.
//
// The engine borrows data for the duration of the call and must be its only
// mutator during that window. Cyclic trees are caller responsibility; the
// engine performs no cycle detection and recurses as deep as the tree goes.
func Validate(ctx context.Context, data any, rules *RuleMap, opts ...Options) error {
	if rules == nil {
		return &ConfigError{Reason: "nil rule map"}
	}
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if !isContainer(data) {
		return Issues{Root().Issue(CodeInvalidType, i18n.T(CodeInvalidType, nil),
			"expected", "object or array", "got", fmt.Sprintf("%T", data))}
	}
	e := &engine{opts: opt, reg: opt.formats(), log: opt.logger()}
	return e.processRuleMap(ctx, data, rules, Root())
}
