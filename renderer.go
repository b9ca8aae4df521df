package funcopt

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"github.com/napalu/funcopt/internal/util"
	"github.com/napalu/funcopt/types"
)

// Renderer formats the pieces of generated help text
type Renderer interface {
	FlagName(o OptionDescriptor) string
	FlagDescription(o OptionDescriptor) string
	FlagUsage(o OptionDescriptor) string
	ArgumentUsage(p Param, strict bool) string
	CommandUsage(name, description string, width int) string
}

// DefaultRenderer renders options the way funcopt prints them in help
type DefaultRenderer struct{}

// NewRenderer creates a DefaultRenderer
func NewRenderer() *DefaultRenderer {
	return &DefaultRenderer{}
}

// FlagName returns the long name of an option as typed on the command line
func (r *DefaultRenderer) FlagName(o OptionDescriptor) string {
	return "--" + o.Long
}

// FlagDescription returns the help text of an option
func (r *DefaultRenderer) FlagDescription(o OptionDescriptor) string {
	return o.Help
}

// FlagUsage generates the help line of an option: its long and short form, value placeholder, description,
// and default value.
func (r *DefaultRenderer) FlagUsage(o OptionDescriptor) string {
	usage := r.FlagName(o)
	if o.Short != "" {
		usage += " or -" + o.Short
	}
	if o.Kind.TakesValue() && o.Metavar != "" {
		usage += " <" + o.Metavar + ">"
	}

	if description := r.FlagDescription(o); description != "" {
		usage += " \"" + description + "\""
	}

	var notes []string
	switch o.Kind {
	case types.Flag:
		notes = append(notes, "flag")
	case types.Accumulate:
		notes = append(notes, "repeatable")
	}
	if o.Kind != types.Flag && !isEmpty(o.Default) {
		notes = append(notes, fmt.Sprintf("defaults to: %v", o.Default))
	}
	if len(notes) > 0 {
		usage += " (" + strings.Join(notes, ", ") + ")"
	}

	return usage
}

// ArgumentUsage returns a required parameter as shown in the usage line
func (r *DefaultRenderer) ArgumentUsage(p Param, strict bool) string {
	if strict {
		return p.Name
	}
	return "[" + p.Name + "]"
}

// CommandUsage returns one line of a command listing with the name right-aligned to width
func (r *DefaultRenderer) CommandUsage(name, description string, width int) string {
	line := fmt.Sprintf("    %*s", width, name)
	if description != "" {
		line += " - " + description
	}
	return line
}

// Help returns the help text of the schema for prog. Text set with WithUsage replaces the generated help.
func (s *Schema) Help(prog string, width int) string {
	return s.HelpWith(NewRenderer(), prog, width)
}

// HelpWith is Help using a custom Renderer
func (s *Schema) HelpWith(r Renderer, prog string, width int) string {
	if s.usage != "" {
		return util.Dedent(util.ExpandProg(s.usage, prog)) + "\n"
	}
	if width <= 0 {
		width = util.DefaultWidth
	}

	var b strings.Builder
	b.WriteString(s.UsageLineWith(r, prog))
	b.WriteString("\n")

	if s.description != "" {
		b.WriteString("\n")
		b.WriteString(wordwrap.WrapString(util.ExpandProg(s.description, prog), uint(width)))
		b.WriteString("\n")
	}

	if len(s.required) > 0 {
		b.WriteString("\narguments:\n")
		for _, p := range s.required {
			line := " " + r.ArgumentUsage(p, s.strict)
			if p.Help != "" {
				line += " \"" + p.Help + "\""
			}
			b.WriteString(wrapIndent(line, width, "    "))
			b.WriteString("\n")
		}
	}

	b.WriteString("\noptions:\n")
	b.WriteString(wrapIndent(` --help or -h "show this help message and exit"`, width, "    "))
	b.WriteString("\n")
	for _, o := range s.options {
		b.WriteString(wrapIndent(" "+r.FlagUsage(o), width, "    "))
		b.WriteString("\n")
	}

	return b.String()
}

// UsageLine returns the one-line synopsis of the command
func (s *Schema) UsageLine(prog string) string {
	return s.UsageLineWith(NewRenderer(), prog)
}

// UsageLineWith is UsageLine using a custom Renderer
func (s *Schema) UsageLineWith(r Renderer, prog string) string {
	parts := []string{"usage:", prog}
	if len(s.options) > 0 {
		parts = append(parts, "[options]")
	}
	for _, p := range s.required {
		parts = append(parts, r.ArgumentUsage(p, s.strict))
	}
	return strings.Join(parts, " ")
}

func wrapIndent(line string, width int, indent string) string {
	if len(line) <= width {
		return line
	}
	limit := width - len(indent)
	if limit < 20 {
		limit = 20
	}
	wrapped := wordwrap.WrapString(line, uint(limit))
	return strings.ReplaceAll(wrapped, "\n", "\n"+indent)
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	}
	return false
}
