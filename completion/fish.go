package completion

import (
	"fmt"
	"strings"
)

type FishGenerator struct{}

func (g *FishGenerator) Generate(programName string, data Data) string {
	var script strings.Builder

	for _, f := range data.Flags {
		script.WriteString(fishFlag(programName, "", f))
	}

	// Commands (always disable file completion for commands)
	for _, c := range data.Commands {
		fmt.Fprintf(&script, "complete -c %s -f -n '__fish_use_subcommand' -a '%s' -d '%s'\n",
			programName, c.Name, escapeFish(c.Description))
	}

	for _, c := range data.Commands {
		for _, f := range c.Flags {
			script.WriteString(fishFlag(programName, c.Name, f))
		}
	}

	return script.String()
}

func fishFlag(programName, cmd string, f Flag) string {
	line := fmt.Sprintf("complete -c %s", programName)
	if !f.File {
		line += " -f"
	}
	if cmd != "" {
		line += fmt.Sprintf(" -n '__fish_seen_subcommand_from %s'", cmd)
	}
	line += fmt.Sprintf(" -l %s", f.Long)
	if f.Short != "" {
		line += fmt.Sprintf(" -s %s", f.Short)
	}
	if f.TakesValue {
		line += " -r"
	}
	if len(f.Values) > 0 {
		line += fmt.Sprintf(" -a '%s'", escapeFish(strings.Join(patterns(f.Values), " ")))
	}
	if f.Description != "" {
		line += fmt.Sprintf(" -d '%s'", escapeFish(f.Description))
	}
	return line + "\n"
}
