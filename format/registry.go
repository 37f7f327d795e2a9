// Package format holds the named validator/converter pairs the engine looks
// up by Rule.Format. Registries are plain values injected at call time; the
// package-level Default registry carries the built-in library.
package format

import "errors"

// ValidatorFunc reports whether v satisfies the format.
type ValidatorFunc func(v any) bool

// ConverterFunc converts v into the format's canonical representation. A
// returned error created with Reason is a data-level failure; any other
// error is treated as a programming error and propagates unchanged.
type ConverterFunc func(v any) (any, error)

// Registry is a named collection of validators and converters. A format may
// register either or both; the engine prefers the converter when conversion
// is enabled.
type Registry struct {
	validators map[string]ValidatorFunc
	converters map[string]ConverterFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		validators: map[string]ValidatorFunc{},
		converters: map[string]ConverterFunc{},
	}
}

// RegisterValidator installs (or replaces) the validator for name.
func (r *Registry) RegisterValidator(name string, fn ValidatorFunc) *Registry {
	r.validators[name] = fn
	return r
}

// RegisterConverter installs (or replaces) the converter for name.
func (r *Registry) RegisterConverter(name string, fn ConverterFunc) *Registry {
	r.converters[name] = fn
	return r
}

// Validator looks up the validator for name.
func (r *Registry) Validator(name string) (ValidatorFunc, bool) {
	fn, ok := r.validators[name]
	return fn, ok
}

// Converter looks up the converter for name.
func (r *Registry) Converter(name string) (ConverterFunc, bool) {
	fn, ok := r.converters[name]
	return fn, ok
}

// Known reports whether name has a validator or a converter registered.
func (r *Registry) Known(name string) bool {
	_, v := r.validators[name]
	_, c := r.converters[name]
	return v || c
}

// Clone returns an independent copy, useful for extending Default without
// mutating it.
func (r *Registry) Clone() *Registry {
	out := NewRegistry()
	for k, v := range r.validators {
		out.validators[k] = v
	}
	for k, c := range r.converters {
		out.converters[k] = c
	}
	return out
}

var defaultRegistry = builtin()

// Default returns the registry holding the built-in format library. Callers
// that need custom formats should Clone it rather than mutate it.
func Default() *Registry { return defaultRegistry }

// reasonError marks converter failures that describe bad data rather than a
// broken program.
type reasonError struct{ msg string }

func (e *reasonError) Error() string { return e.msg }

// Reason wraps a human-readable explanation of why a value does not satisfy
// a format. The engine turns Reason errors into validation issues; every
// other converter error propagates unchanged.
func Reason(msg string) error { return &reasonError{msg: msg} }

// IsReason reports whether err was produced by Reason.
func IsReason(err error) bool {
	var re *reasonError
	return errors.As(err, &re)
}
