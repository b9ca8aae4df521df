package funcopt

import (
	"github.com/napalu/funcopt/types"
	"github.com/napalu/funcopt/validation"
)

// ConfigureFunc is used when defining the declarations of an Invocable
type ConfigureFunc func(*Declarations, *error)

// OptionFunc overrides a field of a synthesized OptionDescriptor
type OptionFunc func(*OptionDescriptor)

// Declarations hold everything attached to an Invocable besides its parameter list: validators, option overrides,
// stream bindings, descriptions and the strictness flag.
type Declarations struct {
	validators  *validation.Pipeline
	options     map[string][]OptionFunc
	streams     map[string]types.Stream
	description string
	usage       string
	nonStrict   bool
	err         error
}

// NewDeclarations creates empty Declarations
func NewDeclarations() *Declarations {
	return &Declarations{
		validators: validation.NewPipeline(),
		options:    map[string][]OptionFunc{},
		streams:    map[string]types.Stream{},
	}
}

// Apply runs configs and returns the first error
func (d *Declarations) Apply(configs ...ConfigureFunc) error {
	var err error
	for _, config := range configs {
		config(d, &err)
		if err != nil {
			return err
		}
	}
	return nil
}

// record applies configs and keeps the first error for Build to report
func (d *Declarations) record(configs ...ConfigureFunc) {
	if d.err != nil {
		return
	}
	d.err = d.Apply(configs...)
}

// Description returns the one-line description shown in command listings
func (d *Declarations) Description() string {
	return d.description
}

// Usage returns the help text set with WithUsage
func (d *Declarations) Usage() string {
	return d.usage
}

// Strict reports whether missing required arguments are an error
func (d *Declarations) Strict() bool {
	return !d.nonStrict
}

// Validators returns the explicitly attached validators
func (d *Declarations) Validators() *validation.Pipeline {
	return d.validators
}

// Declare attaches configs to target and returns the resolved Invocable
func Declare(target any, configs ...ConfigureFunc) (Invocable, error) {
	inv, err := AsInvocable(target)
	if err != nil {
		return nil, err
	}
	if err := inv.declarations().Apply(configs...); err != nil {
		return nil, err
	}
	return inv, nil
}
