package funcopt

import (
	"fmt"

	"github.com/napalu/funcopt/completion"
	"github.com/napalu/funcopt/types"
	"github.com/napalu/funcopt/validation"
)

// Completion returns the completion script of the program for shell. A single target gives a script completing its
// options; several targets are completed as subcommands.
func (r *Runner) Completion(shell string, targets ...any) (string, error) {
	data := completion.Data{Flags: []completion.Flag{helpFlag()}}

	if len(targets) == 1 {
		schema, err := Build(targets[0])
		if err != nil {
			return "", err
		}
		data.Flags = append(data.Flags, schema.CompletionFlags()...)
		return completion.Generate(shell, r.program, data)
	}

	table, err := NewCommandTable(targets...)
	if err != nil {
		return "", err
	}
	for _, c := range table.Commands() {
		schema, err := c.Schema()
		if err != nil {
			return "", err
		}
		data.Commands = append(data.Commands, completion.Command{
			Name:        c.Name,
			Description: c.Description,
			Flags:       schema.CompletionFlags(),
		})
	}
	if !table.Has(HelpCommand) {
		data.Commands = append(data.Commands, completion.Command{Name: HelpCommand, Description: "show help on a subcommand"})
	}

	return completion.Generate(shell, r.program, data)
}

// CompletionFlags describes the options of the schema for completion scripts. Choices become suggested values and
// options validated as paths complete file names.
func (s *Schema) CompletionFlags() []completion.Flag {
	flags := make([]completion.Flag, 0, len(s.options))
	for _, o := range s.options {
		f := completion.Flag{
			Long:        o.Long,
			Short:       o.Short,
			Description: o.Help,
			TakesValue:  o.Kind != types.Flag,
		}
		for _, e := range s.validators.Chain(o.Name) {
			walkValidators(e.Validator, func(v validation.Validator) {
				switch t := v.(type) {
				case *validation.ChoiceCheck:
					for _, c := range t.Choices {
						f.Values = append(f.Values, completion.Value{Pattern: fmt.Sprint(c)})
					}
				case *validation.PathCheck, *validation.StreamOpen:
					f.File = true
				}
			})
		}
		flags = append(flags, f)
	}
	return flags
}

func helpFlag() completion.Flag {
	return completion.Flag{Long: helpLong, Short: "h", Description: "show this help message and exit"}
}

func walkValidators(v validation.Validator, fn func(validation.Validator)) {
	fn(v)
	if c, ok := v.(interface{ Validators() []validation.Validator }); ok {
		for _, inner := range c.Validators() {
			walkValidators(inner, fn)
		}
	}
}
