package funcopt

import (
	"fmt"
	"strings"

	"github.com/napalu/funcopt/errs"
	"github.com/napalu/funcopt/types"
	"github.com/napalu/funcopt/validation"
)

// WithValidator attaches v to each parameter in names. Validators attached to the same name run in attachment order,
// each receiving the previous one's output. Failures are reported with a generic message.
func WithValidator(v validation.Validator, names ...string) ConfigureFunc {
	return WithValidatorMessage("", v, names...)
}

// WithValidatorMessage is WithValidator with a message template. The template may reference ${name} and ${value}:
//
//	WithValidatorMessage("${name} must be a port number, not '${value}'", validation.Integer(), "port")
func WithValidatorMessage(message string, v validation.Validator, names ...string) ConfigureFunc {
	return func(d *Declarations, err *error) {
		if v == nil {
			*err = fmt.Errorf("%w: nil validator", errs.ErrInvalidTag)
			return
		}
		if len(names) == 0 {
			*err = fmt.Errorf("%w: validator %s is not attached to any parameter", errs.ErrUnknownParameter, v.Name())
			return
		}
		for _, name := range names {
			d.validators.Attach(name, validation.Entry{Validator: v, Message: message})
		}
	}
}

// WithChoices restricts name to a set of strings
func WithChoices(name string, choices ...string) ConfigureFunc {
	return WithValidator(validation.Choices(choices...), name)
}

// WithPattern requires the values of name to start with a match of expr
func WithPattern(name, expr string) ConfigureFunc {
	return func(d *Declarations, err *error) {
		v, e := compile(validation.Pattern, expr)
		if e != nil {
			*err = e
			return
		}
		WithValidator(v, name)(d, err)
	}
}

// WithFullPattern requires the values of name to match expr entirely
func WithFullPattern(name, expr string) ConfigureFunc {
	return func(d *Declarations, err *error) {
		v, e := compile(validation.FullPattern, expr)
		if e != nil {
			*err = e
			return
		}
		WithValidator(v, name)(d, err)
	}
}

// WithPath checks the values of name against flags
func WithPath(name string, flags types.PathFlag) ConfigureFunc {
	return WithValidator(validation.Path(flags), name)
}

// WithOpenFile checks the values of name against flags and opens them in mode. The callable receives an *os.File
// and is responsible for closing it. Files are opened while the command line is parsed, so a "w" mode file is
// created or truncated even when a later argument makes the parse fail; the handle is closed in that case.
func WithOpenFile(name string, flags types.PathFlag, mode string) ConfigureFunc {
	return func(d *Declarations, err *error) {
		if _, e := validation.OpenFlags(mode); e != nil {
			*err = e
			return
		}
		WithValidator(validation.Stream(flags, mode), name)(d, err)
	}
}

// WithOption overrides fields of the option synthesized for name
func WithOption(name string, opts ...OptionFunc) ConfigureFunc {
	return func(d *Declarations, err *error) {
		d.options[name] = append(d.options[name], opts...)
	}
}

// WithHelp sets the help text of the option synthesized for name
func WithHelp(name, help string) ConfigureFunc {
	return WithOption(name, OptionHelp(help))
}

// BindStream binds name to a process stream. The parameter is removed from the command line and receives the
// runner's stdin, stdout or stderr.
func BindStream(name string, s types.Stream) ConfigureFunc {
	return func(d *Declarations, err *error) {
		if s == types.NoStream {
			*err = fmt.Errorf("%w: no stream given for %s", errs.ErrInvalidTag, name)
			return
		}
		d.streams[name] = s
	}
}

// WithDescription sets the one-line description shown in command listings
func WithDescription(desc string) ConfigureFunc {
	return func(d *Declarations, err *error) {
		d.description = strings.TrimSpace(desc)
	}
}

// WithUsage replaces the generated help text. %prog and ${prog} are replaced by the program name and common
// indentation is removed.
func WithUsage(usage string) ConfigureFunc {
	return func(d *Declarations, err *error) {
		d.usage = usage
	}
}

// NotStrict tolerates missing required arguments, which are then nil
func NotStrict() ConfigureFunc {
	return func(d *Declarations, err *error) {
		d.nonStrict = true
	}
}

// OptionHelp sets the help text of an option
func OptionHelp(help string) OptionFunc {
	return func(o *OptionDescriptor) {
		o.Help = help
	}
}

// OptionMetavar sets the placeholder shown for the option's value in help
func OptionMetavar(metavar string) OptionFunc {
	return func(o *OptionDescriptor) {
		o.Metavar = metavar
	}
}

// OptionDefault replaces the default value of an option. For an accumulating option it seeds the list.
func OptionDefault(def any) OptionFunc {
	return func(o *OptionDescriptor) {
		o.Default = def
	}
}

// OptionKind overrides the kind inferred from the default value
func OptionKind(kind types.OptionKind) OptionFunc {
	return func(o *OptionDescriptor) {
		o.Kind = kind
	}
}

func compile(build func(string) validation.Validator, expr string) (v validation.Validator, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errs.ErrInvalidTag, r)
		}
	}()
	return build(expr), nil
}
