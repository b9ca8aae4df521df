package completion

import (
	"fmt"
	"strings"
)

type ZshGenerator struct{}

func (g *ZshGenerator) Generate(programName string, data Data) string {
	var script strings.Builder

	fmt.Fprintf(&script, `#compdef %s

__%s_completion() {
    local curcontext="$curcontext" state line
    typeset -A opt_args

    _arguments -C \`, programName, funcName(programName))

	for _, f := range data.Flags {
		fmt.Fprintf(&script, `
        %s \`, zshFlag(f))
	}

	if len(data.Commands) == 0 {
		script.WriteString(`
        '*:file:_files'
}
`)
		fmt.Fprintf(&script, `
__%s_completion "$@"
`, funcName(programName))
		return script.String()
	}

	script.WriteString(`
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _values 'commands' \`)
	for i, c := range data.Commands {
		sep := " \\"
		if i == len(data.Commands)-1 {
			sep = ""
		}
		fmt.Fprintf(&script, `
                '%s[%s]'%s`, c.Name, escapeZsh(c.Description), sep)
	}

	script.WriteString(`
            ;;
        args)
            case $words[1] in`)
	for _, c := range data.Commands {
		fmt.Fprintf(&script, `
                %s)
                    _arguments \`, c.Name)
		for _, f := range c.Flags {
			fmt.Fprintf(&script, `
                        %s \`, zshFlag(f))
		}
		script.WriteString(`
                        '*:file:_files'
                    ;;`)
	}

	fmt.Fprintf(&script, `
            esac
            ;;
    esac
}

__%s_completion "$@"
`, funcName(programName))

	return script.String()
}

// zshFlag returns the _arguments spec of f
func zshFlag(f Flag) string {
	var spec string
	if f.Short != "" {
		spec = fmt.Sprintf("'(--%[1]s -%[2]s)'{--%[1]s,-%[2]s}'[%[3]s]", f.Long, f.Short, escapeZsh(f.Description))
	} else {
		spec = fmt.Sprintf("'--%s[%s]", f.Long, escapeZsh(f.Description))
	}
	if f.TakesValue {
		switch {
		case len(f.Values) > 0:
			spec += fmt.Sprintf(":%s:(%s)", f.Long, escapeZsh(strings.Join(patterns(f.Values), " ")))
		case f.File:
			spec += fmt.Sprintf(":%s:_files", f.Long)
		default:
			spec += fmt.Sprintf(":%s: ", f.Long)
		}
	}
	return spec + "'"
}
