package funcopt

import (
	"fmt"

	"github.com/napalu/funcopt/errs"
	"github.com/napalu/funcopt/types"
	"github.com/napalu/funcopt/validation"
)

// helpLong is reserved by every schema
const helpLong = "help"

// Schema is the command-line interface derived from one Invocable. It is built fresh for every invocation and not
// modified afterward.
type Schema struct {
	invocable   Invocable
	command     string
	required    []Param
	streams     []Param
	options     []OptionDescriptor
	validators  *validation.Pipeline
	strict      bool
	description string
	usage       string
	renames     map[string]string
}

// Build introspects target and derives its Schema. Short flags are assigned in parameter order, explicit validators
// take precedence over validators inferred from default values, and stream parameters are removed from the
// command line.
func Build(target any) (*Schema, error) {
	inv, err := AsInvocable(target)
	if err != nil {
		return nil, err
	}
	decl := inv.declarations()
	if decl.err != nil {
		return nil, decl.err
	}

	in := introspect(inv, decl.streams)
	s := &Schema{
		invocable:   inv,
		command:     inv.Name(),
		required:    in.Required,
		streams:     in.Streams,
		validators:  decl.validators.Clone(),
		strict:      decl.Strict(),
		description: decl.description,
		usage:       decl.usage,
		renames:     map[string]string{},
	}

	if err := s.checkDeclaredNames(in.Names, decl); err != nil {
		return nil, err
	}

	used := NewShortFlags()
	longs := map[string]string{}
	for _, p := range in.Optional {
		var desc OptionDescriptor
		desc, used, err = Synthesize(p, used)
		if err != nil {
			return nil, err
		}
		for _, override := range decl.options[p.Name] {
			override(&desc)
		}
		if desc.Kind == types.Positional {
			return nil, fmt.Errorf("%w: option %s cannot be positional", errs.ErrInvalidTag, p.Name)
		}
		if desc.Long == helpLong {
			return nil, fmt.Errorf("%w: --%s for %s is reserved", errs.ErrDuplicateOption, desc.Long, p.Name)
		}
		if other, ok := longs[desc.Long]; ok {
			return nil, fmt.Errorf("%w: --%s for %s and %s", errs.ErrDuplicateOption, desc.Long, other, p.Name)
		}
		longs[desc.Long] = p.Name

		if !s.validators.Has(p.Name) {
			if e, ok := validation.Infer(desc.Default); ok {
				s.validators.Attach(p.Name, e)
			}
		}
		if desc.Dest != desc.Name {
			s.renames[desc.Dest] = desc.Name
		}
		s.options = append(s.options, desc)
	}

	for _, p := range s.required {
		if s.validators.Has(p.Name) || p.Default == nil {
			continue
		}
		if e, ok := validation.Infer(p.Default); ok {
			s.validators.Attach(p.Name, e)
		}
	}

	return s, nil
}

func (s *Schema) checkDeclaredNames(names []string, decl *Declarations) error {
	known := make(map[string]bool, len(names))
	for _, n := range names {
		if known[n] {
			return fmt.Errorf("%w: parameter %s declared twice", errs.ErrDuplicateOption, n)
		}
		known[n] = true
	}
	for _, n := range decl.validators.Names() {
		if !known[n] {
			return fmt.Errorf("%w: validator attached to %s", errs.ErrUnknownParameter, n)
		}
	}
	for n := range decl.options {
		if !known[n] {
			return fmt.Errorf("%w: option override for %s", errs.ErrUnknownParameter, n)
		}
	}
	for n := range decl.streams {
		if !known[n] {
			return fmt.Errorf("%w: stream bound to %s", errs.ErrUnknownParameter, n)
		}
	}
	return nil
}

// Invocable returns the target the schema was built from
func (s *Schema) Invocable() Invocable {
	return s.invocable
}

// Command returns the command name
func (s *Schema) Command() string {
	return s.command
}

// Required returns the required positional parameters in order
func (s *Schema) Required() []Param {
	return s.required
}

// Streams returns the parameters bound to process streams
func (s *Schema) Streams() []Param {
	return s.streams
}

// Options returns the option descriptors in parameter order. The implicit help option is not included.
func (s *Schema) Options() []OptionDescriptor {
	return s.options
}

// Option returns the descriptor of the option for name, which may be a canonical or public name
func (s *Schema) Option(name string) (OptionDescriptor, bool) {
	for _, o := range s.options {
		if o.Name == name || o.Dest == name {
			return o, true
		}
	}
	return OptionDescriptor{}, false
}

// Validators returns the validator pipeline, explicit and inferred
func (s *Schema) Validators() *validation.Pipeline {
	return s.validators
}

// Strict reports whether missing required arguments are an error
func (s *Schema) Strict() bool {
	return s.strict
}

// Description returns the one-line command description
func (s *Schema) Description() string {
	return s.description
}

// Renames returns the map from option destinations to canonical parameter names, for options which differ
func (s *Schema) Renames() map[string]string {
	return s.renames
}

func (s *Schema) canonical(dest string) string {
	if name, ok := s.renames[dest]; ok {
		return name
	}
	return dest
}
