package funcopt

import (
	"errors"
	"io"

	"github.com/napalu/funcopt/errs"
	"github.com/napalu/funcopt/parse"
)

// Parse parses argv against schema. Option values are validated as they are consumed; positional values are
// validated afterward in parameter order. The result holds every required and optional parameter.
//
// Errors are *errs.UsageError for malformed command lines, arity mismatches and invalid positional values,
// *errs.ValidationError for invalid option values and errs.ErrHelpRequested when -h or --help is given. When an
// error is returned, files already opened by validators are closed.
func Parse(schema *Schema, argv []string) (_ *Args, err error) {
	var opened []io.Closer
	validate := func(name string, raw any) (any, error) {
		value, err := schema.validators.Validate(name, raw)
		if c, ok := value.(io.Closer); ok && err == nil {
			opened = append(opened, c)
		}
		return value, err
	}
	defer func() {
		if err != nil {
			for _, c := range opened {
				_ = c.Close()
			}
		}
	}()

	options := make([]*parse.Option, len(schema.options))
	for i, o := range schema.options {
		options[i] = &parse.Option{
			Dest:    o.Dest,
			Short:   o.Short,
			Long:    o.Long,
			Kind:    o.Kind,
			Default: o.Default,
			Callback: func(dest, value string) (any, error) {
				return validate(schema.canonical(dest), value)
			},
		}
	}

	tok, err := parse.NewTokenizer(options)
	if err != nil {
		return nil, err
	}
	res, err := tok.Tokenize(argv)
	if err != nil {
		var ve *errs.ValidationError
		if errors.Is(err, errs.ErrHelpRequested) || errors.As(err, &ve) {
			return nil, err
		}
		return nil, &errs.UsageError{Message: err.Error(), Err: err}
	}

	positionals := res.Positionals
	if len(positionals) > len(schema.required) {
		return nil, errs.ExtraArguments(positionals[len(schema.required):])
	}
	if len(positionals) < len(schema.required) && schema.strict {
		missing := make([]string, 0, len(schema.required)-len(positionals))
		for _, p := range schema.required[len(positionals):] {
			missing = append(missing, p.Name)
		}
		return nil, errs.MissingArguments(missing)
	}

	args := NewArgs()
	for i, p := range schema.required {
		if i >= len(positionals) {
			args.Set(p.Name, nil)
			continue
		}
		value, err := validate(p.Name, positionals[i])
		if err != nil {
			return nil, &errs.UsageError{Message: err.Error(), Err: err}
		}
		args.Set(p.Name, value)
	}
	for _, o := range schema.options {
		args.Set(o.Name, res.Values[o.Dest])
		if o.Dest != o.Name {
			args.alias(o.Dest, o.Name)
		}
	}

	return args, nil
}

// ParseString splits line with shell quoting rules and parses the result
func ParseString(schema *Schema, line string) (*Args, error) {
	argv, err := parse.Split(line)
	if err != nil {
		return nil, &errs.UsageError{Message: err.Error(), Err: err}
	}
	return Parse(schema, argv)
}
