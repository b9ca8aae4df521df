package validation

import (
	"fmt"
)

// Validator is the interface for all validators. A validator receives the output of the previous validator in its
// chain (the raw command-line string for the first one) and returns a possibly transformed value.
type Validator interface {
	// Apply checks and transforms value
	Apply(value any) (any, error)

	// Name returns a unique name/ID for this validator
	Name() string

	// Description returns a human-readable description of what this validator checks
	Description() string
}

// ValidatorMetadata provides common metadata fields for validators
type ValidatorMetadata struct {
	name        string
	description string
}

func (m ValidatorMetadata) Name() string {
	return m.name
}

func (m ValidatorMetadata) Description() string {
	return m.description
}

// FormattedError is returned by validators whose message is already fit for the user. The pipeline passes the
// message through unchanged instead of rendering the entry's template.
type FormattedError struct {
	Message string
	Err     error
}

// Errorf creates a FormattedError
func Errorf(format string, args ...any) *FormattedError {
	return &FormattedError{Message: fmt.Sprintf(format, args...)}
}

func (e *FormattedError) Error() string {
	return e.Message
}

func (e *FormattedError) Unwrap() error {
	return e.Err
}

// Custom wraps a transform function
type Custom struct {
	ValidatorMetadata
	fn func(any) (any, error)
}

func (c *Custom) Apply(value any) (any, error) {
	return c.fn(value)
}

// NewCustom creates a Validator from an arbitrary transform function
func NewCustom(name, description string, fn func(any) (any, error)) Validator {
	if fn == nil {
		fn = func(v any) (any, error) { return v, nil }
	}
	return &Custom{
		ValidatorMetadata: ValidatorMetadata{name: name, description: description},
		fn:                fn,
	}
}

// Func creates a Validator from a string transform, which covers most conversion functions
func Func(name string, fn func(string) (any, error)) Validator {
	return NewCustom(name, "custom", func(v any) (any, error) {
		return fn(stringOf(v))
	})
}

// Check creates a Validator from a check which leaves the value unchanged
func Check(name string, fn func(string) error) Validator {
	return NewCustom(name, "custom", func(v any) (any, error) {
		if err := fn(stringOf(v)); err != nil {
			return nil, err
		}
		return v, nil
	})
}

// composite applies several validators left to right
type composite struct {
	ValidatorMetadata
	validators []Validator
}

func (c *composite) Apply(value any) (any, error) {
	var err error
	for _, v := range c.validators {
		if value, err = v.Apply(value); err != nil {
			return nil, err
		}
	}
	return value, nil
}

// Validators returns the combined validators in application order
func (c *composite) Validators() []Validator {
	return c.validators
}

// All combines multiple validators - each one receives the previous one's output and all must pass
func All(validators ...Validator) Validator {
	return &composite{
		ValidatorMetadata: ValidatorMetadata{name: "all", description: "all validators must pass"},
		validators:        validators,
	}
}

func stringOf(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
