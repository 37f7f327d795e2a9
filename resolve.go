package treeval

// resolveRule collapses a rule entry into one concrete rule. Single-rule
// entries pass through untouched. Alternative lists are scanned in order:
// the first entry whose named condition holds for (parent, value) wins;
// failing that, the first entry with no condition is the else branch; with
// neither, the value is subject to no constraints at all.
//
// An unknown condition name is a configuration error, not a data error: it
// aborts the whole call regardless of which value triggered the lookup.
func (e *engine) resolveRule(entry ruleEntry, parent, value any, p PathRef) (*Rule, error) {
	if entry.rule != nil {
		return entry.rule, nil
	}
	for _, alt := range entry.alts {
		if alt.Condition == "" {
			continue
		}
		cond, ok := e.opts.Conditions[alt.Condition]
		if !ok {
			return nil, &ConfigError{Path: p.String(), Reason: "unknown condition " + quote(alt.Condition)}
		}
		if cond(parent, value) {
			return alt, nil
		}
	}
	for _, alt := range entry.alts {
		if alt.Condition == "" {
			return alt, nil
		}
	}
	return emptyRule, nil
}

func quote(s string) string { return `"` + s + `"` }
