package treeval

import (
	"encoding/json"
	"unicode/utf8"
)

// asNumber widens the numeric types a decoded value tree can carry.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// compareValues orders two scalars: both numeric or both strings. The second
// return is false when the pair has no usable ordering.
func compareValues(a, b any) (int, bool) {
	if fa, ok := asNumber(a); ok {
		fb, ok := asNumber(b)
		if !ok {
			return 0, false
		}
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		}
		return 0, true
	}
	sa, ok := a.(string)
	if !ok {
		return 0, false
	}
	sb, ok := b.(string)
	if !ok {
		return 0, false
	}
	switch {
	case sa < sb:
		return -1, true
	case sa > sb:
		return 1, true
	}
	return 0, true
}

// scalarEqual is value equality for allowedValues membership: numbers compare
// numerically across widths, everything else by plain equality.
func scalarEqual(a, b any) bool {
	if fa, ok := asNumber(a); ok {
		fb, ok := asNumber(b)
		return ok && fa == fb
	}
	return a == b
}

// countOf returns the element/character count a length constraint applies
// to. Strings count runes; sequences count elements. Anything else has no
// count.
func countOf(v any) (int, bool) {
	switch t := v.(type) {
	case string:
		return utf8.RuneCountInString(t), true
	case []any:
		return len(t), true
	}
	return 0, false
}

// isContainer reports whether v can host childRules.
func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}
