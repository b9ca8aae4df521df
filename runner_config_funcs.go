package funcopt

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/napalu/funcopt/errs"
	"github.com/spf13/viper"
)

// ConfigureRunnerFunc is used when defining Runner options
type ConfigureRunnerFunc func(*Runner, *error)

// WithProgram sets the program name used in help, hints and the log prefix
func WithProgram(name string) ConfigureRunnerFunc {
	return func(r *Runner, err *error) {
		if name == "" {
			*err = fmt.Errorf("%w: empty program name", errs.ErrInvalidTag)
			return
		}
		r.program = name
	}
}

// WithStdin sets the reader bound to stdin parameters
func WithStdin(in io.Reader) ConfigureRunnerFunc {
	return func(r *Runner, err *error) {
		r.stdin = in
	}
}

// WithStdout sets the writer receiving help and bound to stdout parameters
func WithStdout(out io.Writer) ConfigureRunnerFunc {
	return func(r *Runner, err *error) {
		r.stdout = out
	}
}

// WithStderr sets the writer receiving errors, hints, command listings and logs, and bound to stderr parameters
func WithStderr(out io.Writer) ConfigureRunnerFunc {
	return func(r *Runner, err *error) {
		r.stderr = out
	}
}

// WithRaise makes usage and validation errors propagate to the caller instead of being reported. It overrides the
// FUNCOPT_RAISE environment variable.
func WithRaise(raise bool) ConfigureRunnerFunc {
	return func(r *Runner, err *error) {
		r.raise = raise
		r.raiseSet = true
	}
}

// WithLogger replaces the default logger
func WithLogger(logger *log.Logger) ConfigureRunnerFunc {
	return func(r *Runner, err *error) {
		r.logger = logger
	}
}

// WithEnv reads the raise and debug toggles from v instead of the process environment
func WithEnv(v *viper.Viper) ConfigureRunnerFunc {
	return func(r *Runner, err *error) {
		r.env = v
	}
}
