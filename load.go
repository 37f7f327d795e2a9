package treeval

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParseRulesJSON decodes a RuleMap from JSON, preserving rule declaration
// order. Entry values that are objects become single rules; arrays become
// conditional alternative lists.
func ParseRulesJSON(data []byte) (*RuleMap, error) {
	m := NewRuleMap()
	if err := m.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseRulesYAML decodes a RuleMap from a YAML document, preserving rule
// declaration order.
func ParseRulesYAML(data []byte) (*RuleMap, error) {
	m := NewRuleMap()
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadDataJSON decodes a JSON document into the map[string]any / []any /
// scalar shape Validate operates on.
func ReadDataJSON(r io.Reader) (any, error) {
	var v any
	dec := json.NewDecoder(r)
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// ReadDataYAML decodes a YAML document into the same shape.
func ReadDataYAML(r io.Reader) (any, error) {
	var v any
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// UnmarshalJSON decodes the rule map token by token so declaration order
// survives; a plain map round-trip would lose it.
func (m *RuleMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return &ConfigError{Reason: "rule map must be a JSON object"}
	}
	if m.entries == nil {
		m.entries = map[string]ruleEntry{}
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		if m.Has(key) {
			return &ConfigError{Path: key, Reason: "duplicate rule name " + quote(key)}
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		entry, err := decodeJSONEntry(key, raw)
		if err != nil {
			return err
		}
		m.put(key, entry)
	}
	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func decodeJSONEntry(key string, raw json.RawMessage) (ruleEntry, error) {
	switch firstByte(raw) {
	case '{':
		r := &Rule{}
		if err := json.Unmarshal(raw, r); err != nil {
			return ruleEntry{}, err
		}
		return ruleEntry{rule: r}, nil
	case '[':
		var alts []*Rule
		if err := json.Unmarshal(raw, &alts); err != nil {
			return ruleEntry{}, err
		}
		return ruleEntry{alts: alts}, nil
	}
	return ruleEntry{}, &ConfigError{Path: key, Reason: "rule entry must be an object or an array of objects"}
}

func firstByte(raw []byte) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}

// UnmarshalYAML decodes the rule map from a mapping node, keeping the
// authored key order and rejecting duplicate rule names.
func (m *RuleMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return &ConfigError{Reason: "rule map must be a YAML mapping"}
	}
	if m.entries == nil {
		m.entries = map[string]ruleEntry{}
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		key := k.Value
		if m.Has(key) {
			return &ConfigError{Path: key, Reason: fmt.Sprintf("duplicate rule name %q (line %d)", key, k.Line)}
		}
		switch v.Kind {
		case yaml.MappingNode:
			r := &Rule{}
			if err := v.Decode(r); err != nil {
				return err
			}
			m.put(key, ruleEntry{rule: r})
		case yaml.SequenceNode:
			alts := make([]*Rule, 0, len(v.Content))
			for _, alt := range v.Content {
				if alt.Kind != yaml.MappingNode {
					return &ConfigError{Path: key, Reason: "conditional alternatives must be mappings"}
				}
				r := &Rule{}
				if err := alt.Decode(r); err != nil {
					return err
				}
				alts = append(alts, r)
			}
			m.put(key, ruleEntry{alts: alts})
		default:
			return &ConfigError{Path: key, Reason: "rule entry must be a mapping or a sequence of mappings"}
		}
	}
	return nil
}

// UnmarshalJSON reads the [min, max] 2-tuple form of a range.
func (r *Range) UnmarshalJSON(data []byte) error {
	var tup []any
	if err := json.Unmarshal(data, &tup); err != nil {
		return err
	}
	return r.fromTuple(tup)
}

// UnmarshalYAML reads the [min, max] 2-tuple form of a range.
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	var tup []any
	if err := node.Decode(&tup); err != nil {
		return err
	}
	return r.fromTuple(tup)
}

func (r *Range) fromTuple(tup []any) error {
	if len(tup) != 2 {
		return &ConfigError{Reason: fmt.Sprintf("range must be a [min, max] pair, got %d elements", len(tup))}
	}
	r.Min, r.Max = tup[0], tup[1]
	return nil
}
