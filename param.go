package funcopt

import (
	"github.com/napalu/funcopt/types"
)

// Param declares one parameter of an Invocable. A parameter without a default is required and consumed
// positionally; a parameter with a default becomes an option. For a required parameter Default only serves as a
// type hint for value coercion.
type Param struct {
	Name       string
	Default    any
	HasDefault bool
	Short      string
	Help       string
	Stream     types.Stream
}

// Arg declares a required positional parameter
func Arg(name string) Param {
	return Param{Name: name}
}

// ArgOf declares a required positional parameter coerced like hint, so ArgOf("n", 0) yields an int
func ArgOf(name string, hint any) Param {
	return Param{Name: name, Default: hint}
}

// Opt declares an optional parameter. The type of def decides how the option is presented: a bool gives a flag,
// a slice an accumulating option and anything else an option taking one value.
func Opt(name string, def any) Param {
	return Param{Name: name, Default: def, HasDefault: true}
}

// StreamArg declares a parameter bound to a process stream. It never appears on the command line.
func StreamArg(name string, s types.Stream) Param {
	return Param{Name: name, Stream: s}
}

// Describe returns a copy of p with help text
func (p Param) Describe(help string) Param {
	p.Help = help
	return p
}

// Required reports whether p must be given positionally
func (p Param) Required() bool {
	return !p.HasDefault && p.Stream == types.NoStream
}
