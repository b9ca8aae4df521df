package funcopt

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/napalu/funcopt/errs"
	"github.com/napalu/funcopt/parse"
	"github.com/napalu/funcopt/types"
)

// OptionDescriptor describes the command-line option synthesized for an optional parameter. Dest is the key the
// tokenizer stores the value under; it differs from Name when a short flag was requested with the x_name convention.
type OptionDescriptor struct {
	Name    string
	Dest    string
	Short   string
	Long    string
	Kind    types.OptionKind
	Default any
	Help    string
	Metavar string
}

// ShortFlags is the set of short flags already assigned within one schema
type ShortFlags string

// NewShortFlags returns the initial set, which reserves h for help
func NewShortFlags() ShortFlags {
	return "h"
}

// Contains reports whether r is already assigned
func (s ShortFlags) Contains(r rune) bool {
	return strings.ContainsRune(string(s), r)
}

// With returns the set extended by r
func (s ShortFlags) With(r rune) ShortFlags {
	if s.Contains(r) {
		return s
	}
	return s + ShortFlags(r)
}

// Synthesize derives the option descriptor of p and returns it along with the updated set of used short flags.
//
// A name of the form x_rest requests the short flag x and the public name rest. Otherwise the first letter of the
// name not yet in used becomes the short flag; when every letter is taken the option only has a long form. Digits
// are only assigned on request since -1 and the like are read as negative numbers.
func Synthesize(p Param, used ShortFlags) (OptionDescriptor, ShortFlags, error) {
	desc := OptionDescriptor{
		Name:    p.Name,
		Dest:    p.Name,
		Kind:    kindOf(p.Default),
		Default: p.Default,
		Help:    p.Help,
	}

	requested := p.Short
	if short, rest, ok := splitShortName(p.Name); ok {
		desc.Dest = rest
		if requested == "" {
			requested = short
		}
	}

	if requested != "" {
		r := rune(requested[0])
		if len(requested) != 1 || !parse.IsAlnum(r) {
			return desc, used, fmt.Errorf("%w: -%s for %s", errs.ErrInvalidTag, requested, p.Name)
		}
		if used.Contains(r) {
			return desc, used, fmt.Errorf("%w: -%s for %s", errs.ErrShortFlagConflict, requested, p.Name)
		}
		desc.Short = requested
		used = used.With(r)
	} else {
		for _, r := range p.Name {
			if unicode.IsLetter(r) && parse.IsAlnum(r) && !used.Contains(r) {
				desc.Short = string(r)
				used = used.With(r)
				break
			}
		}
	}

	desc.Long = strings.ReplaceAll(desc.Dest, "_", "-")
	desc.Metavar = strings.ToUpper(strings.ReplaceAll(desc.Dest, "-", "_"))

	return desc, used, nil
}

func splitShortName(name string) (short, rest string, ok bool) {
	if len(name) < 3 || name[1] != '_' || !parse.IsAlnum(rune(name[0])) {
		return "", "", false
	}
	return name[:1], name[2:], true
}

func kindOf(def any) types.OptionKind {
	if def == nil {
		return types.Single
	}
	if _, ok := def.(bool); ok {
		return types.Flag
	}
	switch reflect.TypeOf(def).Kind() {
	case reflect.Slice, reflect.Array:
		return types.Accumulate
	case reflect.Bool:
		return types.Flag
	}
	return types.Single
}
