package funcopt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/napalu/funcopt/errs"
	"github.com/napalu/funcopt/internal/util"
	"github.com/napalu/funcopt/parse"
	"github.com/napalu/funcopt/types"
	"github.com/spf13/viper"
)

// Status codes returned by a Runner
const (
	StatusOK             = 0
	StatusUnknownCommand = -1
	StatusUsage          = 2
)

// EnvPrefix is the prefix of the environment variables read by a Runner: FUNCOPT_RAISE makes usage and validation
// errors propagate instead of being reported, FUNCOPT_DEBUG enables debug logging.
const EnvPrefix = "FUNCOPT"

// Runner builds schemas, parses arguments and invokes targets. Usage and validation errors are reported on the
// error stream and turned into a status code unless raise is set.
type Runner struct {
	program  string
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	raise    bool
	raiseSet bool
	logger   *log.Logger
	env      *viper.Viper
}

// NewRunner creates a Runner. Unless configured otherwise it uses the process streams, the base name of os.Args[0]
// as program name and the environment for the raise and debug toggles.
func NewRunner(configs ...ConfigureRunnerFunc) (*Runner, error) {
	r := &Runner{
		program: ProgramName(),
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}

	var err error
	for _, config := range configs {
		config(r, &err)
		if err != nil {
			return nil, err
		}
	}

	if r.env == nil {
		r.env = viper.New()
		r.env.SetEnvPrefix(EnvPrefix)
		r.env.AutomaticEnv()
	}
	r.env.SetDefault("raise", false)
	r.env.SetDefault("debug", false)
	if !r.raiseSet {
		r.raise = r.env.GetBool("raise")
	}
	if r.logger == nil {
		r.logger = log.NewWithOptions(r.stderr, log.Options{
			Prefix: r.program,
			Level:  log.WarnLevel,
		})
		if r.env.GetBool("debug") {
			r.logger.SetLevel(log.DebugLevel)
		}
	}

	return r, nil
}

// ProgramName returns the base name of the running executable
func ProgramName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return "unknown_program"
	}
	return filepath.Base(os.Args[0])
}

// Program returns the program name used in help and hints
func (r *Runner) Program() string {
	return r.program
}

// Raise reports whether usage and validation errors propagate
func (r *Runner) Raise() bool {
	return r.raise
}

// Logger returns the logger of the runner
func (r *Runner) Logger() *log.Logger {
	return r.logger
}

// Run parses argv against target and invokes it, returning its result. Programmer errors such as
// errs.ErrNotCallable always propagate, as do errors returned by the target. -h prints help to the output stream and
// returns StatusOK. Usage and validation errors are reported with a hint and yield StatusUsage.
func (r *Runner) Run(target any, argv []string) (any, error) {
	schema, err := Build(target)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("schema built", "command", schema.Command(), "required", len(schema.Required()),
		"options", len(schema.Options()))

	return r.execute(schema, r.program, argv, fmt.Sprintf("Try '%s -h'", r.program))
}

// RunString is Run with a command line split using shell quoting rules
func (r *Runner) RunString(target any, line string) (any, error) {
	argv, err := parse.Split(line)
	if err != nil {
		return r.fail(&errs.UsageError{Message: err.Error(), Err: err}, fmt.Sprintf("Try '%s -h'", r.program))
	}
	return r.Run(target, argv)
}

// RunMany dispatches argv to one of targets, selected by the first token. Without a token, or with the single token
// help, the command listing is printed and StatusOK returned. "help cmd..." prints the help of each command. An
// unknown command yields StatusUnknownCommand.
func (r *Runner) RunMany(targets []any, argv []string) (any, error) {
	table, err := NewCommandTable(targets...)
	if err != nil {
		return nil, err
	}
	return r.Dispatch(table, argv)
}

// RunManyString is RunMany with a command line split using shell quoting rules
func (r *Runner) RunManyString(targets []any, line string) (any, error) {
	argv, err := parse.Split(line)
	if err != nil {
		return r.fail(&errs.UsageError{Message: err.Error(), Err: err}, fmt.Sprintf("Try '%s help'", r.program))
	}
	return r.RunMany(targets, argv)
}

// Dispatch is RunMany with a prepared CommandTable
func (r *Runner) Dispatch(table *CommandTable, argv []string) (any, error) {
	if len(argv) == 0 {
		r.printListing(table)
		return StatusOK, nil
	}

	name, rest := argv[0], argv[1:]
	cmd, ok := table.Get(name)
	if !ok && name == HelpCommand {
		return r.commandHelp(table, rest)
	}
	if !ok {
		r.logger.Debug("unknown command", "command", name)
		if r.raise {
			return nil, &errs.UsageError{Message: fmt.Sprintf("Unknown command: '%s'", name), Err: errs.ErrUnknownCommand}
		}
		r.errorf("Unknown command: '%s'", name)
		r.hint(fmt.Sprintf("Try '%s help'", r.program))
		return StatusUnknownCommand, nil
	}

	schema, err := cmd.Schema()
	if err != nil {
		return nil, err
	}
	r.logger.Debug("command resolved", "command", name, "args", len(rest))

	return r.execute(schema, r.program+" "+name, rest, fmt.Sprintf("Try '%s help %s'", r.program, name))
}

func (r *Runner) commandHelp(table *CommandTable, names []string) (any, error) {
	if len(names) == 0 {
		r.printListing(table)
		return StatusOK, nil
	}
	width := util.TerminalWidth(r.stdout)
	for _, name := range names {
		cmd, ok := table.Get(name)
		if !ok {
			r.errorf("Unknown command: '%s'", name)
			continue
		}
		schema, err := cmd.Schema()
		if err != nil {
			return nil, err
		}
		_, _ = io.WriteString(r.stdout, schema.Help(r.program+" "+name, width)+"\n")
	}
	return StatusOK, nil
}

func (r *Runner) execute(schema *Schema, prog string, argv []string, hint string) (any, error) {
	args, err := Parse(schema, argv)
	if errors.Is(err, errs.ErrHelpRequested) {
		_, _ = io.WriteString(r.stdout, schema.Help(prog, util.TerminalWidth(r.stdout)))
		return StatusOK, nil
	}
	if err != nil {
		if !errs.IsUserError(err) {
			return nil, err
		}
		r.logger.Debug("parse failed", "command", schema.Command(), "err", err)
		return r.fail(err, hint)
	}

	for _, p := range schema.Streams() {
		args.Set(p.Name, r.stream(p.Stream))
	}

	return schema.Invocable().Invoke(args)
}

func (r *Runner) fail(err error, hint string) (any, error) {
	if r.raise {
		return nil, err
	}
	r.errorf("%s", err.Error())
	r.hint(hint)
	return StatusUsage, nil
}

func (r *Runner) stream(s types.Stream) any {
	switch s {
	case types.Stdin:
		return r.stdin
	case types.Stdout:
		return r.stdout
	case types.Stderr:
		return r.stderr
	}
	return nil
}

func (r *Runner) printListing(table *CommandTable) {
	_, _ = io.WriteString(r.stderr, table.Listing(r.program))
}

func (r *Runner) errorf(format string, args ...any) {
	c := color.New(color.FgRed)
	if !util.IsTerminal(r.stderr) {
		c.DisableColor()
	}
	_, _ = c.Fprintf(r.stderr, format+"\n", args...)
}

func (r *Runner) hint(hint string) {
	_, _ = fmt.Fprintln(r.stderr, hint)
}

// Run runs target with the process arguments using a default Runner
func Run(target any) (any, error) {
	r, err := NewRunner()
	if err != nil {
		return nil, err
	}
	return r.Run(target, os.Args[1:])
}

// RunMany dispatches the process arguments to one of targets using a default Runner
func RunMany(targets ...any) (any, error) {
	r, err := NewRunner()
	if err != nil {
		return nil, err
	}
	return r.RunMany(targets, os.Args[1:])
}

// Main runs a single target, or dispatches between several, and exits the process. The exit status is the status
// returned by the runner, the int returned by the target, or 1 when an error propagates.
func Main(targets ...any) {
	var (
		result any
		err    error
	)
	if len(targets) == 1 {
		result, err = Run(targets[0])
	} else {
		result, err = RunMany(targets...)
	}
	os.Exit(ExitCode(result, err))
}

// ExitCode converts the result of Run or RunMany to a process exit status
func ExitCode(result any, err error) int {
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if code, ok := result.(int); ok {
		if code < 0 {
			return 255
		}
		return code
	}
	return StatusOK
}
