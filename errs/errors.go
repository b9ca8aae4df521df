// Package errs defines the errors returned by funcopt.
//
// Programmer errors (ErrNotCallable, ErrNoConstructor, ErrShortFlagConflict, ErrDuplicateCommand, ErrDuplicateOption,
// ErrInvalidTag, ErrUnknownParameter)
// describe a mistake in how the library was invoked and always propagate to the caller. ErrUsage and ErrValidation
// describe bad user input: a Runner reports them on its error stream and converts them into a status code unless
// raw propagation was requested.
package errs

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrNotCallable        = errors.New("target is not callable")
	ErrNoConstructor      = errors.New("target has no constructor")
	ErrUsage              = errors.New("usage error")
	ErrValidation         = errors.New("validation failed")
	ErrIOOpen             = errors.New("failed to open file")
	ErrHelpRequested      = errors.New("help requested")
	ErrShortFlagConflict  = errors.New("short flag conflict")
	ErrDuplicateCommand   = errors.New("duplicate command")
	ErrDuplicateOption    = errors.New("duplicate option")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrUnknownOption      = errors.New("no such option")
	ErrAmbiguousOption    = errors.New("ambiguous option")
	ErrOptionExpectsValue = errors.New("option requires an argument")
	ErrOptionTakesNoValue = errors.New("option does not take a value")
	ErrInvalidTag         = errors.New("invalid tag")
	ErrInvalidMode        = errors.New("invalid file mode")
	ErrUnknownParameter   = errors.New("unknown parameter")
	ErrUnsupportedShell   = errors.New("unsupported shell")
)

const (
	FmtErrorWithString = "%w: %s"
)

// NotCallableError is returned when a target exposes neither a function, a constructor nor a call operator
type NotCallableError struct {
	Target any
}

func (e *NotCallableError) Error() string {
	return fmt.Sprintf("%T is not callable", e.Target)
}

func (e *NotCallableError) Is(target error) bool {
	return target == ErrNotCallable
}

// NoConstructorError is returned for struct targets which have nothing to construct from
type NoConstructorError struct {
	Type reflect.Type
}

func (e *NoConstructorError) Error() string {
	return fmt.Sprintf("%v has no bindable fields and no Init method", e.Type)
}

func (e *NoConstructorError) Is(target error) bool {
	return target == ErrNoConstructor
}

// UsageError reports an arity mismatch or a malformed command line
type UsageError struct {
	Message string
	Missing []string
	Extra   []string
	Err     error
}

// NewUsageError creates a UsageError with a formatted message
func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// MissingArguments reports every missing required parameter in one message
func MissingArguments(names []string) *UsageError {
	return &UsageError{
		Message: "Missing " + plural("argument", len(names)) + ": " + strings.Join(names, ", "),
		Missing: names,
	}
}

// ExtraArguments reports every unexpected positional token in one message
func ExtraArguments(tokens []string) *UsageError {
	return &UsageError{
		Message: "Extra " + plural("argument", len(tokens)) + ": " + strings.Join(tokens, ", "),
		Extra:   tokens,
	}
}

func (e *UsageError) Error() string {
	return e.Message
}

func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ValidationError reports a named parameter whose value failed its validator chain
type ValidationError struct {
	Name    string
	Value   any
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IOOpenError reports a stream validator which could not open its path
type IOOpenError struct {
	Path string
	Mode string
	Err  error
}

func (e *IOOpenError) Error() string {
	return fmt.Sprintf("Failed to open file '%s' : %s", e.Path, describe(e.Err))
}

func (e *IOOpenError) Is(target error) bool {
	return target == ErrIOOpen
}

func (e *IOOpenError) Unwrap() error {
	return e.Err
}

// IsUserError reports whether err is a user-facing usage or validation error
func IsUserError(err error) bool {
	return errors.Is(err, ErrUsage) || errors.Is(err, ErrValidation)
}

func describe(err error) string {
	var pathErr interface{ Unwrap() error }
	if errors.As(err, &pathErr) && pathErr.Unwrap() != nil {
		return pathErr.Unwrap().Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
