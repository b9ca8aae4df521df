package completion

import (
	"fmt"
	"sort"

	"github.com/napalu/funcopt/errs"
)

// Value is a suggested value of an option
type Value struct {
	Pattern     string
	Description string
}

// Flag describes one option
type Flag struct {
	Long        string
	Short       string
	Description string
	TakesValue  bool
	File        bool // complete file names for the value
	Values      []Value
}

// Command describes one subcommand and its options
type Command struct {
	Name        string
	Description string
	Flags       []Flag
}

// Data is used to store the completion data of a program. Flags apply regardless of the command; Commands is empty
// for single-command programs.
type Data struct {
	Flags    []Flag
	Commands []Command
}

// Generator renders a completion script for one shell
type Generator interface {
	Generate(program string, data Data) string
}

var generators = map[string]Generator{
	"bash": &BashGenerator{},
	"zsh":  &ZshGenerator{},
	"fish": &FishGenerator{},
}

// GetGenerator returns the generator for shell
func GetGenerator(shell string) (Generator, error) {
	g, ok := generators[shell]
	if !ok {
		return nil, fmt.Errorf(errs.FmtErrorWithString, errs.ErrUnsupportedShell, shell)
	}
	return g, nil
}

// Generate renders the completion script of program for shell
func Generate(shell, program string, data Data) (string, error) {
	g, err := GetGenerator(shell)
	if err != nil {
		return "", err
	}
	return g.Generate(program, data), nil
}

// Shells returns the supported shells
func Shells() []string {
	shells := make([]string, 0, len(generators))
	for s := range generators {
		shells = append(shells, s)
	}
	sort.Strings(shells)
	return shells
}
