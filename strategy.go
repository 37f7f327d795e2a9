package treeval

import "sort"

// pairing is one (position, rule-name) unit of work produced by an iteration
// strategy. Mapping positions carry a key, sequence positions an index.
type pairing struct {
	name  string
	key   string
	index int
}

// strategy is the tagged choice of traversal algorithm for one RuleMap
// application. It is selected once per application from the parent's shape
// and the presence of a wildcard entry, never re-derived mid-iteration.
type strategy int

const (
	mappingExplicit strategy = iota
	mappingWildcard
	sequenceCyclic
	sequenceAnchored
)

func selectStrategy(rules *RuleMap, parent any) strategy {
	_, isSeq := parent.([]any)
	switch {
	case isSeq && rules.HasWildcard():
		return sequenceAnchored
	case isSeq:
		return sequenceCyclic
	case rules.HasWildcard():
		return mappingWildcard
	default:
		return mappingExplicit
	}
}

// pairings produces the ordered positions to evaluate. Positions beyond the
// data (missing keys, indexes past the sequence end) are included so that
// required rules see the absence.
func (s strategy) pairings(rules *RuleMap, parent any) []pairing {
	switch s {
	case mappingExplicit:
		return explicitPairs(rules)
	case mappingWildcard:
		m, _ := parent.(map[string]any)
		return wildcardMapPairs(rules, m)
	case sequenceCyclic:
		seq, _ := parent.([]any)
		return cyclicSeqPairs(rules, seq)
	default:
		seq, _ := parent.([]any)
		return anchoredSeqPairs(rules, seq)
	}
}

// explicitPairs: one pair per rule name in declaration order; a name absent
// from the value still yields a pair with an undefined child.
func explicitPairs(rules *RuleMap) []pairing {
	names := rules.Names()
	out := make([]pairing, 0, len(names))
	for _, n := range names {
		out = append(out, pairing{name: n, key: n, index: -1})
	}
	return out
}

// wildcardMapPairs: explicit names first in declaration order, then every
// uncovered value key matched to the wildcard. Go maps are unordered, so
// uncovered keys are visited in sorted order for deterministic error
// selection.
func wildcardMapPairs(rules *RuleMap, m map[string]any) []pairing {
	out := make([]pairing, 0, len(rules.Names())+len(m))
	for _, n := range rules.Names() {
		if n == Wildcard {
			continue
		}
		out = append(out, pairing{name: n, key: n, index: -1})
	}
	uncovered := make([]string, 0, len(m))
	for k := range m {
		if !rules.Has(k) {
			uncovered = append(uncovered, k)
		}
	}
	sort.Strings(uncovered)
	for _, k := range uncovered {
		out = append(out, pairing{name: Wildcard, key: k, index: -1})
	}
	return out
}

// cyclicSeqPairs: rule names repeat cyclically over the sequence. When the
// sequence is shorter than the name list, iteration continues so required
// rules past the end still see an undefined value.
func cyclicSeqPairs(rules *RuleMap, seq []any) []pairing {
	names := rules.Names()
	if len(names) == 0 {
		return nil
	}
	n := len(seq)
	if len(names) > n {
		n = len(names)
	}
	out := make([]pairing, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, pairing{name: names[i%len(names)], key: "", index: i})
	}
	return out
}

// anchoredSeqPairs: names before the wildcard bind 1:1 to the front of the
// sequence, names after it bind 1:1 to the back, and every position between
// them uses the wildcard. The position count never drops below head+tail
// (plus one when the wildcard itself is required), so anchored rules are
// checked even against a too-short sequence.
func anchoredSeqPairs(rules *RuleMap, seq []any) []pairing {
	names := rules.Names()
	wc := rules.wildcardIndex()
	head := wc
	tail := len(names) - wc - 1

	min := head + tail
	if e, ok := rules.entry(Wildcard); ok && e.rule != nil && e.rule.Required {
		min++
	}
	n := len(seq)
	if min > n {
		n = min
	}

	out := make([]pairing, 0, n)
	for i := 0; i < n; i++ {
		var name string
		switch {
		case i < head:
			name = names[i]
		case i >= n-tail:
			name = names[wc+1+(i-(n-tail))]
		default:
			name = Wildcard
		}
		out = append(out, pairing{name: name, key: "", index: i})
	}
	return out
}
