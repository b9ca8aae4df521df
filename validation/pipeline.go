package validation

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"time"

	"github.com/napalu/funcopt/errs"
)

// Entry pairs a validator with an optional message template. The template may reference ${name} and ${value}.
type Entry struct {
	Validator Validator
	Message   string
}

// Chain is an ordered list of entries applied left to right
type Chain []Entry

// Apply runs the chain for name. Each entry receives the previous entry's output and the first failure stops the
// chain. A *FormattedError keeps its message; any other failure is reported with the entry's template, or a generic
// message when the entry has none.
func (c Chain) Apply(name string, raw any) (any, error) {
	value := raw
	for _, e := range c {
		out, err := e.Validator.Apply(value)
		if err != nil {
			return nil, newValidationError(name, raw, e.Message, err)
		}
		value = out
	}
	return value, nil
}

func newValidationError(name string, raw any, template string, err error) *errs.ValidationError {
	var formatted *FormattedError
	if errors.As(err, &formatted) {
		return &errs.ValidationError{Name: name, Value: raw, Message: formatted.Message, Err: err}
	}
	msg := fmt.Sprintf("Failed to validate: %q = %q", name, stringOf(raw))
	if template != "" {
		msg = Expand(template, name, raw)
	}
	return &errs.ValidationError{Name: name, Value: raw, Message: msg, Err: err}
}

// Expand renders a message template, substituting ${name} and ${value}. Unknown placeholders are left as they are.
func Expand(template, name string, value any) string {
	return os.Expand(template, func(key string) string {
		switch key {
		case "name":
			return name
		case "value":
			return stringOf(value)
		}
		return "${" + key + "}"
	})
}

// Pipeline maps parameter names to validator chains
type Pipeline struct {
	chains map[string]Chain
}

// NewPipeline creates an empty Pipeline
func NewPipeline() *Pipeline {
	return &Pipeline{chains: map[string]Chain{}}
}

// Attach appends entries to the chain of name
func (p *Pipeline) Attach(name string, entries ...Entry) {
	p.chains[name] = append(p.chains[name], entries...)
}

// Has reports whether a chain exists for name
func (p *Pipeline) Has(name string) bool {
	_, ok := p.chains[name]
	return ok
}

// Chain returns the chain attached to name
func (p *Pipeline) Chain(name string) Chain {
	return p.chains[name]
}

// Names returns the names which have a chain, sorted
func (p *Pipeline) Names() []string {
	names := make([]string, 0, len(p.chains))
	for n := range p.chains {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate runs the chain of name against raw. Names without a chain return raw unchanged.
func (p *Pipeline) Validate(name string, raw any) (any, error) {
	c, ok := p.chains[name]
	if !ok {
		return raw, nil
	}
	return c.Apply(name, raw)
}

// Clone returns a copy which can be extended without affecting p
func (p *Pipeline) Clone() *Pipeline {
	c := NewPipeline()
	for name, chain := range p.chains {
		c.chains[name] = append(Chain(nil), chain...)
	}
	return c
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
)

// Infer returns the coercion matching the run-time type of a default value. For a non-empty slice the first
// element decides. Booleans, nil and unknown types have no coercion.
func Infer(def any) (Entry, bool) {
	if def == nil {
		return Entry{}, false
	}
	v := reflect.ValueOf(def)
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		if v.Len() == 0 {
			return Entry{}, false
		}
		v = v.Index(0)
		for v.Kind() == reflect.Interface && !v.IsNil() {
			v = v.Elem()
		}
	}
	if !v.IsValid() {
		return Entry{}, false
	}

	switch v.Type() {
	case timeType:
		return Entry{Validator: Time(), Message: "${name} must be a date or time"}, true
	case durationType:
		return Entry{Validator: Duration(), Message: "${name} must be a duration"}, true
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Entry{Validator: Integer(), Message: "${name} must be an integer"}, true
	case reflect.Float32, reflect.Float64:
		return Entry{Validator: Float(), Message: "${name} must be a number"}, true
	case reflect.String:
		return Entry{Validator: Identity()}, true
	}
	return Entry{}, false
}
