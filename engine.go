package treeval

import (
	"context"
	"log/slog"

	"github.com/reoring/treeval/format"
)

// engine carries one Validate call: options, the injected format registry,
// and the sibling frame stack. It is created per call and never shared.
type engine struct {
	opts   Options
	reg    *format.Registry
	frames frameStack
	log    *slog.Logger
}

// processRuleMap applies one RuleMap to a parent container: push a sibling
// frame, pick the iteration strategy once, evaluate every (position, rule)
// pair in order, write conversions back in place, run the filter pass, pop
// the frame. The first violated constraint aborts the traversal.
func (e *engine) processRuleMap(ctx context.Context, parent any, rules *RuleMap, p PathRef) error {
	e.frames.push()
	defer e.frames.pop()

	strat := selectStrategy(rules, parent)
	pairs := strat.pairings(rules, parent)

	m, _ := parent.(map[string]any)
	seq, isSeq := parent.([]any)
	multi := rules.Len() > 1

	for _, pair := range pairs {
		var (
			val     any
			present bool
			cp      PathRef
		)
		if pair.index >= 0 {
			if pair.index < len(seq) {
				val, present = seq[pair.index], true
			}
			cp = p.Index(pair.index, pair.name, multi)
		} else {
			val, present = m[pair.key]
			cp = p.Field(pair.key)
		}

		entry, _ := rules.entry(pair.name)
		rule, err := e.resolveRule(entry, parent, val, cp)
		if err != nil {
			return err
		}

		if e.opts.Debug {
			e.log.DebugContext(ctx, "applying rule",
				"path", cp.String(), "rule", pair.name, "present", present)
		}

		out, converted, err := e.evalRule(ctx, pair.name, rule, val, present, cp)
		if err != nil {
			return err
		}
		if converted {
			if pair.index >= 0 {
				seq[pair.index] = out
			} else {
				m[pair.key] = out
			}
		}
	}

	if e.opts.Filter && !isSeq && m != nil && !rules.HasWildcard() {
		for k := range m {
			if !rules.Has(k) {
				if e.opts.Debug {
					e.log.DebugContext(ctx, "filtering unknown key",
						"path", p.Field(k).String())
				}
				delete(m, k)
			}
		}
	}
	return nil
}

func isReason(err error) bool { return format.IsReason(err) }
