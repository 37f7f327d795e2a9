package treeval

// Package treeval validates arbitrarily nested data trees (map[string]any,
// []any, scalars) against a declarative rule tree, and can convert values and
// prune unrecognized keys in place during the same traversal.
//
// It provides:
//
// - A rule-as-data model (RuleMap / Rule) covering structure, format, range,
//   length, ordering, and cross-sibling constraints
// - Positional matching for sequences, including head/tail anchoring around
//   a wildcard rule
// - Condition-guarded rule alternatives resolved per value
// - A stable error model via Issues (dotted/bracket path, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; format validators/converters
//   live under format/, expression-backed conditions under cond/, and the
//   CLI under cmd/treeval.
// - Validation is fail-fast: the first violated constraint aborts the call.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	rules := treeval.NewRuleMap().
//		Set("id", &treeval.Rule{Required: true, Format: "uuid"}).
//		Set("tags", &treeval.Rule{ChildRules: treeval.NewRuleMap().
//			Set(treeval.Wildcard, &treeval.Rule{NoRepeat: true})})
//	err := treeval.Validate(ctx, doc, rules, treeval.Options{Convert: true})
