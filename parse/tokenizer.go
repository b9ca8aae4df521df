package parse

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/napalu/funcopt/errs"
	"github.com/napalu/funcopt/types"
)

const (
	helpShort = "h"
	helpLong  = "help"
)

// Callback converts the raw value of an option when it is consumed
type Callback func(dest, value string) (any, error)

// Option describes one option understood by a Tokenizer
type Option struct {
	Dest     string
	Short    string
	Long     string
	Kind     types.OptionKind
	Default  any
	Callback Callback
}

// Result holds the option values and the positional arguments left over by Tokenize
type Result struct {
	Values      map[string]any
	Positionals []string
}

// Tokenizer splits arguments into option values and positional arguments. Options may appear anywhere before a
// "--" terminator. Long options may be abbreviated to any unique prefix.
type Tokenizer struct {
	options []*Option
	short   map[string]*Option
	long    map[string]*Option
}

// NewTokenizer creates a Tokenizer. -h and --help are reserved.
func NewTokenizer(options []*Option) (*Tokenizer, error) {
	t := &Tokenizer{
		options: options,
		short:   map[string]*Option{},
		long:    map[string]*Option{},
	}
	for _, o := range options {
		if o.Dest == "" || o.Long == "" {
			return nil, fmt.Errorf("%w: option requires a destination and a long name", errs.ErrInvalidTag)
		}
		if o.Kind == types.Positional {
			return nil, fmt.Errorf("%w: %s is positional", errs.ErrInvalidTag, o.Long)
		}
		if o.Short != "" {
			if o.Short == helpShort || t.short[o.Short] != nil {
				return nil, fmt.Errorf(errs.FmtErrorWithString, errs.ErrShortFlagConflict, "-"+o.Short)
			}
			t.short[o.Short] = o
		}
		if o.Long == helpLong || t.long[o.Long] != nil {
			return nil, fmt.Errorf(errs.FmtErrorWithString, errs.ErrDuplicateOption, "--"+o.Long)
		}
		t.long[o.Long] = o
	}

	return t, nil
}

// Options returns the options in declaration order
func (t *Tokenizer) Options() []*Option {
	return t.options
}

// Tokenize consumes args. Options not given keep their default. Accumulating options always yield a []any.
//
// Callbacks run as values are consumed. A single-value option given more than once only has its last occurrence
// passed to the callback; earlier occurrences are superseded and never converted.
func (t *Tokenizer) Tokenize(args []string) (*Result, error) {
	dry := &scan{dry: true, last: map[string]int{}}
	// errors of the dry pass are reported by the real pass at the same position
	_ = t.run(args, dry)

	s := &scan{last: dry.last, seen: map[string]int{}}
	if err := t.run(args, s); err != nil {
		return nil, err
	}
	return s.res, nil
}

// scan is the state of one pass over the arguments. A dry pass counts single-value occurrences without storing
// or converting anything.
type scan struct {
	res  *Result
	dry  bool
	last map[string]int
	seen map[string]int
}

func (t *Tokenizer) run(args []string, s *scan) error {
	s.res = &Result{Values: make(map[string]any, len(t.options)), Positionals: []string{}}
	for _, o := range t.options {
		s.res.Values[o.Dest] = initialValue(o)
	}

	state := NewState(args)
	for {
		arg, ok := state.Next()
		if !ok {
			break
		}
		var err error
		switch {
		case arg == "--":
			s.res.Positionals = append(s.res.Positionals, state.Remaining()...)
		case strings.HasPrefix(arg, "--"):
			err = t.processLong(state, arg, s)
		case t.isShortFlag(arg):
			err = t.processShort(state, arg, s)
		default:
			s.res.Positionals = append(s.res.Positionals, arg)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// isShortFlag reports whether arg is a short option cluster. A lone "-" and negative numbers whose first digit is
// not a registered flag are positional.
func (t *Tokenizer) isShortFlag(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	if _, err := strconv.ParseFloat(arg, 64); err == nil {
		return t.short[arg[1:2]] != nil
	}
	return true
}

func (t *Tokenizer) processLong(state State, arg string, s *scan) error {
	name, value, hasValue := strings.Cut(arg[2:], "=")
	long, err := t.resolveLong(name)
	if err != nil {
		return err
	}
	if long == helpLong {
		return errs.ErrHelpRequested
	}
	o := t.long[long]
	if !o.Kind.TakesValue() {
		if hasValue {
			return fmt.Errorf(errs.FmtErrorWithString, errs.ErrOptionTakesNoValue, "--"+long)
		}
		return t.store(o, "", s)
	}
	if !hasValue {
		if value, hasValue = state.Next(); !hasValue {
			return fmt.Errorf(errs.FmtErrorWithString, errs.ErrOptionExpectsValue, "--"+long)
		}
	}

	return t.store(o, value, s)
}

func (t *Tokenizer) processShort(state State, arg string, s *scan) error {
	cluster := arg[1:]
	for i := 0; i < len(cluster); i++ {
		flag := cluster[i : i+1]
		if flag == helpShort {
			return errs.ErrHelpRequested
		}
		o, ok := t.short[flag]
		if !ok {
			return fmt.Errorf(errs.FmtErrorWithString, errs.ErrUnknownOption, "-"+flag)
		}
		if !o.Kind.TakesValue() {
			if err := t.store(o, "", s); err != nil {
				return err
			}
			continue
		}
		value := cluster[i+1:]
		if value == "" {
			var found bool
			if value, found = state.Next(); !found {
				return fmt.Errorf(errs.FmtErrorWithString, errs.ErrOptionExpectsValue, "-"+flag)
			}
		}
		return t.store(o, value, s)
	}

	return nil
}

// resolveLong returns the long name matched exactly or by a unique prefix
func (t *Tokenizer) resolveLong(name string) (string, error) {
	if name == helpLong || t.long[name] != nil {
		return name, nil
	}
	var matches []string
	if name != "" {
		if strings.HasPrefix(helpLong, name) {
			matches = append(matches, helpLong)
		}
		for long := range t.long {
			if strings.HasPrefix(long, name) {
				matches = append(matches, long)
			}
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf(errs.FmtErrorWithString, errs.ErrUnknownOption, "--"+name)
	case 1:
		return matches[0], nil
	}
	sort.Strings(matches)
	return "", fmt.Errorf("%w: --%s (--%s?)", errs.ErrAmbiguousOption, name, strings.Join(matches, ", --"))
}

func (t *Tokenizer) store(o *Option, raw string, s *scan) error {
	switch o.Kind {
	case types.Flag:
		s.res.Values[o.Dest] = true
		return nil
	case types.Single, types.Accumulate:
		if s.dry {
			s.last[o.Dest]++
			return nil
		}
		if o.Kind == types.Single {
			s.seen[o.Dest]++
			if s.seen[o.Dest] < s.last[o.Dest] {
				return nil
			}
		}
		var value any = raw
		if o.Callback != nil {
			v, err := o.Callback(o.Dest, raw)
			if err != nil {
				return err
			}
			value = v
		}
		if o.Kind == types.Single {
			s.res.Values[o.Dest] = value
			return nil
		}
		list, _ := s.res.Values[o.Dest].([]any)
		s.res.Values[o.Dest] = append(list, value)
		return nil
	}

	return fmt.Errorf("%w: %s", errs.ErrUnknownOption, o.Long)
}

func initialValue(o *Option) any {
	if o.Kind != types.Accumulate {
		return o.Default
	}
	return ToList(o.Default)
}

// ToList copies a slice into a []any. A nil value gives an empty list and any other value a single element list.
func ToList(v any) []any {
	if v == nil {
		return []any{}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	list := make([]any, rv.Len())
	for i := range list {
		list[i] = rv.Index(i).Interface()
	}
	return list
}
