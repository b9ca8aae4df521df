package completion

import (
	"fmt"
	"strings"
)

type BashGenerator struct{}

func (g *BashGenerator) Generate(programName string, data Data) string {
	var script strings.Builder

	fmt.Fprintf(&script, `#!/bin/bash

function __%s_completion() {
    local cur prev cmd
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    cmd=""
`, funcName(programName))

	if len(data.Commands) > 0 {
		script.WriteString(`
    for ((i=1; i < COMP_CWORD; i++)); do
        if [[ "${COMP_WORDS[i]}" != -* ]]; then
            cmd="${COMP_WORDS[i]}"
            break
        fi
    done
`)
	}

	script.WriteString(`
    # Handle flag values
    case "${cmd}@${prev}" in`)
	for _, f := range data.Flags {
		writeBashValues(&script, "*", f)
	}
	for _, c := range data.Commands {
		for _, f := range c.Flags {
			writeBashValues(&script, c.Name, f)
		}
	}
	script.WriteString(`
    esac

    if [[ "$cur" == -* ]]; then
        local flags=(`)
	global := make([]string, 0, len(data.Flags)*2)
	for _, f := range data.Flags {
		global = append(global, words(f)...)
	}
	script.WriteString(strings.Join(global, " "))
	script.WriteString(`)
        case "${cmd}" in`)
	for _, c := range data.Commands {
		if len(c.Flags) == 0 {
			continue
		}
		local := make([]string, 0, len(c.Flags)*2)
		for _, f := range c.Flags {
			local = append(local, words(f)...)
		}
		fmt.Fprintf(&script, `
            %s)
                flags+=(%s)
                ;;`, c.Name, strings.Join(local, " "))
	}
	script.WriteString(`
        esac
        COMPREPLY=( $(compgen -W "${flags[*]}" -- "$cur") )
        return
    fi
`)

	if len(data.Commands) > 0 {
		names := make([]string, len(data.Commands))
		for i, c := range data.Commands {
			names[i] = c.Name
		}
		fmt.Fprintf(&script, `
    if [[ -z "$cmd" ]]; then
        COMPREPLY=( $(compgen -W "%s" -- "$cur") )
        return
    fi
`, strings.Join(names, " "))
	}

	fmt.Fprintf(&script, `
    COMPREPLY=( $(compgen -f -- "$cur") )
}

complete -F __%s_completion %s
`, funcName(programName), programName)

	return script.String()
}

func writeBashValues(script *strings.Builder, cmd string, f Flag) {
	if !f.TakesValue || (len(f.Values) == 0 && !f.File) {
		return
	}
	labels := make([]string, 0, 2)
	for _, w := range words(f) {
		labels = append(labels, cmd+"@"+w)
	}
	fmt.Fprintf(script, `
        %s)`, strings.Join(labels, "|"))
	if len(f.Values) > 0 {
		fmt.Fprintf(script, `
            COMPREPLY=( $(compgen -W "%s" -- "$cur") )`, escapeBash(strings.Join(patterns(f.Values), " ")))
	} else {
		script.WriteString(`
            COMPREPLY=( $(compgen -f -- "$cur") )`)
	}
	script.WriteString(`
            return
            ;;`)
}

// funcName turns a program name into a shell function name
func funcName(program string) string {
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(program)
}
