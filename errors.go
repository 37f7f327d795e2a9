package treeval

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeInvalidFormat = "invalid_format"
	CodeInvalidEnum   = "invalid_enum"
	CodeOutOfRange    = "out_of_range"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeWrongLength   = "wrong_length"
	// Cross-sibling constraints
	CodeSiblingLength = "sibling_length"
	CodeNotAscending  = "not_ascending"
	CodeNotDescending = "not_descending"
	CodeRepeatedValue = "repeated_value"
)

// Issue represents a single validation failure.
type Issue struct {
	Path    string // Dotted/bracket path (for example: items[2].price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, format names, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"min":1, "max":10, "got":42})
	// for i18n and observability.
	Params map[string]any
	// Rule optionally records the rule name that produced this issue.
	Rule string
}

// Issues is a collection of validation failures that implements error.
// Validation is fail-fast, so an Issues returned by Validate always holds
// exactly one entry; the slice form keeps the error model open to callers
// that aggregate across multiple Validate calls.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. out_of_range at items[2].price: too big
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ConfigError reports a schema-authoring or wiring mistake: an unknown format
// name, an unknown condition name, childRules attached where no container can
// appear, a duplicated wildcard entry. These are programmer errors, always
// fatal, and deliberately distinct from the Issues data-error surface.
type ConfigError struct {
	Path   string // Rule path where the mistake was found ("" for top level).
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return "treeval: " + e.Reason
	}
	return "treeval: " + e.Reason + " at " + e.Path
}

// AsConfigError extracts a *ConfigError from an error chain.
func AsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
