package treeval

import (
	"log/slog"

	"github.com/reoring/treeval/format"
)

// ConditionFunc decides whether a conditional rule alternative applies to
// value given its parent container.
type ConditionFunc func(parent, value any) bool

// Options bundles validation options. The zero value checks without mutating.
type Options struct {
	// Filter prunes mapping keys not named by the governing RuleMap. It only
	// applies to mappings whose RuleMap has no wildcard entry.
	Filter bool
	// Convert replaces validated values in place with the registered
	// converter's output.
	Convert bool
	// Debug traces each rule application through Logger.
	Debug bool
	// Conditions maps condition names (Rule.Condition) to predicates.
	Conditions map[string]ConditionFunc
	// Formats supplies the validator/converter registry. Nil selects
	// format.Default().
	Formats *format.Registry
	// Logger receives Debug traces. Nil selects slog.Default().
	Logger *slog.Logger
}

func (o Options) formats() *format.Registry {
	if o.Formats != nil {
		return o.Formats
	}
	return format.Default()
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
