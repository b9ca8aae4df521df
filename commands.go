package funcopt

import (
	"fmt"
	"strings"

	"github.com/napalu/funcopt/errs"
	orderedmap "github.com/wk8/go-ordered-map"
)

// HelpCommand is the reserved first token asking for the command listing or the help of commands. A command
// registered under this name takes precedence.
const HelpCommand = "help"

// Command is one entry of a CommandTable
type Command struct {
	Name        string
	Description string
	Invocable   Invocable
	schema      *Schema
}

// Schema builds the schema of the command on first use
func (c *Command) Schema() (*Schema, error) {
	if c.schema != nil {
		return c.schema, nil
	}
	s, err := Build(c.Invocable)
	if err != nil {
		return nil, err
	}
	c.schema = s
	return s, nil
}

// CommandTable maps command names to commands in registration order
type CommandTable struct {
	commands *orderedmap.OrderedMap
}

// NewCommandTable resolves every target and registers it under its name. Registering two targets under the same
// name fails with errs.ErrDuplicateCommand.
func NewCommandTable(targets ...any) (*CommandTable, error) {
	t := &CommandTable{commands: orderedmap.New()}
	for _, target := range targets {
		if err := t.Add(target); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add registers target under its name
func (t *CommandTable) Add(target any) error {
	inv, err := AsInvocable(target)
	if err != nil {
		return err
	}
	name := inv.Name()
	if name == "" {
		return fmt.Errorf("%w: %T has no name", errs.ErrNotCallable, target)
	}
	if _, ok := t.commands.Get(name); ok {
		return fmt.Errorf(errs.FmtErrorWithString, errs.ErrDuplicateCommand, name)
	}
	decl := inv.declarations()
	if decl.err != nil {
		return decl.err
	}
	t.commands.Set(name, &Command{Name: name, Description: decl.description, Invocable: inv})
	return nil
}

// Get returns the command registered under name
func (t *CommandTable) Get(name string) (*Command, bool) {
	v, ok := t.commands.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Command), true
}

// Has reports whether name is registered
func (t *CommandTable) Has(name string) bool {
	_, ok := t.commands.Get(name)
	return ok
}

// Len returns the number of commands
func (t *CommandTable) Len() int {
	return t.commands.Len()
}

// Commands returns the commands in registration order
func (t *CommandTable) Commands() []*Command {
	cmds := make([]*Command, 0, t.commands.Len())
	for pair := t.commands.Oldest(); pair != nil; pair = pair.Next() {
		cmds = append(cmds, pair.Value.(*Command))
	}
	return cmds
}

// Names returns the command names in registration order
func (t *CommandTable) Names() []string {
	names := make([]string, 0, t.commands.Len())
	for pair := t.commands.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key.(string))
	}
	return names
}

// Listing returns the command listing printed when no command is given
func (t *CommandTable) Listing(prog string) string {
	return t.ListingWith(NewRenderer(), prog)
}

// ListingWith is Listing using a custom Renderer
func (t *CommandTable) ListingWith(r Renderer, prog string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "usage: %s <subcommand> [options] [args]\n", prog)
	fmt.Fprintf(&b, "Type '%s help <subcommand>' for help on a specific subcommand.\n", prog)
	b.WriteString("\nAvailable subcommands:\n")

	width := 0
	for _, name := range t.Names() {
		if len(name) > width {
			width = len(name)
		}
	}
	for _, c := range t.Commands() {
		b.WriteString(r.CommandUsage(c.Name, c.Description, width))
		b.WriteString("\n")
	}
	return b.String()
}
