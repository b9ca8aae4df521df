package errs

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrors_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not callable", &NotCallableError{Target: 42}, ErrNotCallable},
		{"no constructor", &NoConstructorError{Type: reflect.TypeOf(struct{}{})}, ErrNoConstructor},
		{"usage", NewUsageError("bad %s", "input"), ErrUsage},
		{"validation", &ValidationError{Name: "foo", Value: "x", Message: "foo must be an integer"}, ErrValidation},
		{"io open", &IOOpenError{Path: "/nowhere", Mode: "r", Err: os.ErrNotExist}, ErrIOOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.ErrorIs(t, fmt.Errorf("wrapped: %w", tt.err), tt.sentinel)
		})
	}
}

func TestMissingAndExtraArguments(t *testing.T) {
	err := MissingArguments([]string{"a", "b"})
	assert.Equal(t, "Missing arguments: a, b", err.Error())
	assert.Equal(t, []string{"a", "b"}, err.Missing)

	err = MissingArguments([]string{"b"})
	assert.Equal(t, "Missing argument: b", err.Error())

	err = ExtraArguments([]string{"3", "4"})
	assert.Equal(t, "Extra arguments: 3, 4", err.Error())
	assert.Equal(t, []string{"3", "4"}, err.Extra)
}

func TestIOOpenError_Message(t *testing.T) {
	_, openErr := os.Open("/path/to/nowhere")
	require.Error(t, openErr)

	err := &IOOpenError{Path: "/path/to/nowhere", Mode: "r", Err: openErr}
	assert.Equal(t, "Failed to open file '/path/to/nowhere' : no such file or directory", err.Error())
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestValidationError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &ValidationError{Name: "n", Message: "msg", Err: inner}
	assert.ErrorIs(t, err, inner)

	var ve *ValidationError
	require.True(t, errors.As(fmt.Errorf("%w", err), &ve))
	assert.Equal(t, "n", ve.Name)
}

func TestIsUserError(t *testing.T) {
	assert.True(t, IsUserError(NewUsageError("x")))
	assert.True(t, IsUserError(&ValidationError{}))
	assert.False(t, IsUserError(&NotCallableError{}))
	assert.False(t, IsUserError(errors.New("other")))
}
