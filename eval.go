package treeval

import (
	"context"
	"fmt"

	"github.com/reoring/treeval/i18n"
)

// evalRule applies a resolved rule to one value, in the fixed constraint
// order: required, format, allowedValues, range, length family, sibling
// length, ordering, childRules. Each check assumes the previous ones passed.
// It returns the (possibly converted) value and whether a conversion
// replaced it; an absent, not-required value short-circuits with no further
// checks and no recursion.
func (e *engine) evalRule(ctx context.Context, name string, r *Rule, val any, present bool, p PathRef) (any, bool, error) {
	if !present {
		if r.Required {
			return nil, false, Issues{p.Issue(CodeRequired, i18n.T(CodeRequired, nil))}
		}
		return nil, false, nil
	}

	converted := false
	if r.Format != "" {
		out, ch, err := e.checkFormat(r.Format, val, p)
		if err != nil {
			return nil, false, err
		}
		val, converted = out, ch
	}

	if len(r.AllowedValues) > 0 {
		if err := checkAllowed(r.AllowedValues, val, p); err != nil {
			return nil, false, err
		}
	}

	if r.Range != nil {
		if err := checkRange(r.Range, val, p); err != nil {
			return nil, false, err
		}
	}

	if r.Length != nil || r.MinLength != nil || r.MaxLength != nil {
		if err := checkLengths(r, val, p); err != nil {
			return nil, false, err
		}
	}

	if r.FixedChildLength {
		if err := e.checkSiblingLength(val, p); err != nil {
			return nil, false, err
		}
	}

	if r.Ascending || r.Descending || r.NoRepeat {
		if err := e.checkOrdering(name, r, val, p); err != nil {
			return nil, false, err
		}
	}

	if r.ChildRules != nil {
		if !isContainer(val) {
			return nil, false, Issues{p.Issue(CodeInvalidType, i18n.T(CodeInvalidType, nil), "expected", "object or array", "got", fmt.Sprintf("%T", val))}
		}
		if err := e.processRuleMap(ctx, val, r.ChildRules, p); err != nil {
			return nil, false, err
		}
	}

	return val, converted, nil
}

// checkFormat validates or converts val through the registry. An unknown
// format name is a configuration error. Converter failures created with
// format.Reason become validation issues; any other converter error
// propagates unchanged so rich custom error types survive the wrapper.
func (e *engine) checkFormat(name string, val any, p PathRef) (any, bool, error) {
	validate, hasValidator := e.reg.Validator(name)
	convert, hasConverter := e.reg.Converter(name)
	if !hasValidator && !hasConverter {
		return nil, false, &ConfigError{Path: p.String(), Reason: "unknown format " + quote(name)}
	}

	if e.opts.Convert && hasConverter {
		out, err := convert(val)
		if err != nil {
			if isReason(err) {
				iss := p.Issue(CodeInvalidFormat, err.Error(), "format", name)
				iss.Cause = err
				return nil, false, Issues{iss}
			}
			return nil, false, err
		}
		return out, true, nil
	}

	if hasValidator {
		if !validate(val) {
			return nil, false, Issues{p.Issue(CodeInvalidFormat, i18n.T(CodeInvalidFormat, nil), "format", name)}
		}
		return val, false, nil
	}

	// Converter-only format with conversion disabled: run the converter for
	// its verdict and discard the output.
	if _, err := convert(val); err != nil {
		if isReason(err) {
			iss := p.Issue(CodeInvalidFormat, err.Error(), "format", name)
			iss.Cause = err
			return nil, false, Issues{iss}
		}
		return nil, false, err
	}
	return val, false, nil
}

func checkAllowed(allowed []any, val any, p PathRef) error {
	for _, a := range allowed {
		if scalarEqual(a, val) {
			return nil
		}
	}
	return Issues{p.Issue(CodeInvalidEnum, i18n.T(CodeInvalidEnum, nil), "got", val)}
}

func checkRange(r *Range, val any, p PathRef) error {
	cmin, okMin := compareValues(val, r.Min)
	cmax, okMax := compareValues(val, r.Max)
	if !okMin || !okMax {
		return Issues{p.Issue(CodeInvalidType, i18n.T(CodeInvalidType, nil), "expected", "value comparable with range bounds", "got", fmt.Sprintf("%T", val))}
	}
	if cmin < 0 || cmax > 0 {
		return Issues{p.Issue(CodeOutOfRange, i18n.T(CodeOutOfRange, nil), "min", r.Min, "max", r.Max, "got", val)}
	}
	return nil
}

func checkLengths(r *Rule, val any, p PathRef) error {
	n, ok := countOf(val)
	if !ok {
		return Issues{p.Issue(CodeInvalidType, i18n.T(CodeInvalidType, nil), "expected", "string or array", "got", fmt.Sprintf("%T", val))}
	}
	if r.MinLength != nil && n < *r.MinLength {
		return Issues{p.Issue(CodeTooShort, i18n.T(CodeTooShort, nil), "min", *r.MinLength, "got", n)}
	}
	if r.MaxLength != nil && n > *r.MaxLength {
		return Issues{p.Issue(CodeTooLong, i18n.T(CodeTooLong, nil), "max", *r.MaxLength, "got", n)}
	}
	if r.Length != nil && n != *r.Length {
		return Issues{p.Issue(CodeWrongLength, i18n.T(CodeWrongLength, nil), "want", *r.Length, "got", n)}
	}
	return nil
}

// checkSiblingLength seals the sibling length baseline on the first flagged
// sibling at this level and compares every later one against it.
func (e *engine) checkSiblingLength(val any, p PathRef) error {
	n, ok := countOf(val)
	if !ok {
		return Issues{p.Issue(CodeInvalidType, i18n.T(CodeInvalidType, nil), "expected", "string or array", "got", fmt.Sprintf("%T", val))}
	}
	baseline, ok := e.frames.top().sealLength(n)
	if !ok {
		return Issues{p.Issue(CodeSiblingLength, i18n.T(CodeSiblingLength, nil), "want", baseline, "got", n)}
	}
	return nil
}

// checkOrdering compares val against the last sibling recorded under the
// same rule name and records val on success.
func (e *engine) checkOrdering(name string, r *Rule, val any, p PathRef) error {
	f := e.frames.top()
	last, seen := f.lastValue(name)
	if seen {
		c, ok := compareValues(val, last)
		if !ok {
			return Issues{p.Issue(CodeInvalidType, i18n.T(CodeInvalidType, nil), "expected", "value comparable with its siblings", "got", fmt.Sprintf("%T", val))}
		}
		switch {
		case r.Ascending && c < 0:
			return Issues{p.Issue(CodeNotAscending, i18n.T(CodeNotAscending, nil), "prev", last, "got", val)}
		case r.Descending && c > 0:
			return Issues{p.Issue(CodeNotDescending, i18n.T(CodeNotDescending, nil), "prev", last, "got", val)}
		case r.NoRepeat && c == 0:
			return Issues{p.Issue(CodeRepeatedValue, i18n.T(CodeRepeatedValue, nil), "got", val)}
		}
	}
	f.record(name, val)
	return nil
}
