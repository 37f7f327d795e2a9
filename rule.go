package treeval

// Wildcard is the reserved rule name matching any mapping key or sequence
// position not covered by an explicitly named rule in the same RuleMap.
const Wildcard = "*"

// Rule is one set of constraints applied to a single value. The zero value
// constrains nothing.
type Rule struct {
	// Required fails the value when it is absent from its parent. An absent
	// value that is not required skips every other constraint.
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`
	// Format names a validator/converter pair in the format registry.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
	// AllowedValues restricts the value to one of the listed scalars.
	AllowedValues []any `json:"allowedValues,omitempty" yaml:"allowedValues,omitempty"`
	// Range bounds the value inclusively on both ends.
	Range *Range `json:"range,omitempty" yaml:"range,omitempty"`
	// Length family applies to the value's element/character count.
	Length    *int `json:"length,omitempty" yaml:"length,omitempty"`
	MinLength *int `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	// ChildRules descends into the value, which must then be a mapping or a
	// sequence.
	ChildRules *RuleMap `json:"childRules,omitempty" yaml:"childRules,omitempty"`
	// Ordering flags compare the value against the previous sibling matched
	// by the same rule name.
	Ascending  bool `json:"ascending,omitempty" yaml:"ascending,omitempty"`
	Descending bool `json:"descending,omitempty" yaml:"descending,omitempty"`
	NoRepeat   bool `json:"noRepeat,omitempty" yaml:"noRepeat,omitempty"`
	// FixedChildLength requires every sibling carrying the flag to share the
	// length of the first such sibling.
	FixedChildLength bool `json:"fixedChildLength,omitempty" yaml:"fixedChildLength,omitempty"`
	// Condition names a predicate from Options.Conditions; it is only
	// meaningful inside a conditional alternative list.
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// emptyRule is what a conditional list resolves to when nothing matches and
// no else alternative exists.
var emptyRule = &Rule{}

// Range is the inclusive [Min, Max] 2-tuple of the range constraint. Bounds
// are scalars comparable with the checked value (both numeric or both
// strings).
type Range struct {
	Min any
	Max any
}

// ruleEntry is one named slot of a RuleMap: either a single rule or an
// ordered conditional alternative list.
type ruleEntry struct {
	rule *Rule
	alts []*Rule
}

// RuleMap is an ordered collection of rule-name -> rule (or alternative
// list) pairs governing one level of a value tree. Declaration order is the
// evaluation order, which makes it part of the observable contract: it
// decides which violation is reported first and which conversions happen
// before a later failure.
type RuleMap struct {
	names   []string
	entries map[string]ruleEntry
}

// NewRuleMap returns an empty RuleMap.
func NewRuleMap() *RuleMap {
	return &RuleMap{entries: map[string]ruleEntry{}}
}

// Set registers a single rule under name, replacing any previous entry while
// keeping its original position. It returns the map for chaining.
func (m *RuleMap) Set(name string, r *Rule) *RuleMap {
	return m.put(name, ruleEntry{rule: r})
}

// SetAlts registers an ordered conditional alternative list under name.
// Entries carrying a Condition are tried in order; the first entry without
// one is the else branch.
func (m *RuleMap) SetAlts(name string, alts ...*Rule) *RuleMap {
	return m.put(name, ruleEntry{alts: alts})
}

func (m *RuleMap) put(name string, e ruleEntry) *RuleMap {
	if m.entries == nil {
		m.entries = map[string]ruleEntry{}
	}
	if _, seen := m.entries[name]; !seen {
		m.names = append(m.names, name)
	}
	m.entries[name] = e
	return m
}

// Names returns the rule names in declaration order.
func (m *RuleMap) Names() []string { return m.names }

// Len returns the number of entries.
func (m *RuleMap) Len() int { return len(m.names) }

// Has reports whether name is declared.
func (m *RuleMap) Has(name string) bool {
	_, ok := m.entries[name]
	return ok
}

// HasWildcard reports whether the reserved wildcard entry is declared.
func (m *RuleMap) HasWildcard() bool { return m.Has(Wildcard) }

// wildcardIndex returns the declaration index of the wildcard entry, or -1.
func (m *RuleMap) wildcardIndex() int {
	for i, n := range m.names {
		if n == Wildcard {
			return i
		}
	}
	return -1
}

func (m *RuleMap) entry(name string) (ruleEntry, bool) {
	e, ok := m.entries[name]
	return e, ok
}

// Entry returns the single rule registered under name, or the alternative
// list when the entry is conditional.
func (m *RuleMap) Entry(name string) (r *Rule, alts []*Rule, ok bool) {
	e, ok := m.entries[name]
	return e.rule, e.alts, ok
}
