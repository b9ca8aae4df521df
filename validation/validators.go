package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	emailPattern  = `(?i)\b[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}\b`
	ipAddrPattern = `\b(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\b`
)

type identity struct {
	ValidatorMetadata
}

func (identity) Apply(value any) (any, error) {
	return value, nil
}

// Identity passes values through unchanged
func Identity() Validator {
	return identity{ValidatorMetadata{name: "identity", description: "any string"}}
}

// IntegerCoercion parses a base-10 integer
type IntegerCoercion struct {
	ValidatorMetadata
}

func (IntegerCoercion) Apply(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	}
	return strconv.Atoi(strings.TrimSpace(stringOf(value)))
}

// Integer coerces values to int
func Integer() Validator {
	return IntegerCoercion{ValidatorMetadata{name: "integer", description: "an integer"}}
}

// FloatCoercion parses a 64-bit float
type FloatCoercion struct {
	ValidatorMetadata
}

func (FloatCoercion) Apply(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	}
	return strconv.ParseFloat(strings.TrimSpace(stringOf(value)), 64)
}

// Float coerces values to float64
func Float() Validator {
	return FloatCoercion{ValidatorMetadata{name: "float", description: "a floating point number"}}
}

// TimeCoercion parses dates and times in any format understood by dateparse
type TimeCoercion struct {
	ValidatorMetadata
}

func (TimeCoercion) Apply(value any) (any, error) {
	if t, ok := value.(time.Time); ok {
		return t, nil
	}
	return dateparse.ParseAny(strings.TrimSpace(stringOf(value)))
}

// Time coerces values to time.Time
func Time() Validator {
	return TimeCoercion{ValidatorMetadata{name: "time", description: "a date or time"}}
}

// DurationCoercion parses Go duration strings such as 1h30m
type DurationCoercion struct {
	ValidatorMetadata
}

func (DurationCoercion) Apply(value any) (any, error) {
	if d, ok := value.(time.Duration); ok {
		return d, nil
	}
	return time.ParseDuration(strings.TrimSpace(stringOf(value)))
}

// Duration coerces values to time.Duration
func Duration() Validator {
	return DurationCoercion{ValidatorMetadata{name: "duration", description: "a duration"}}
}

// ChoiceCheck accepts only members of a fixed set, optionally after coercing the value
type ChoiceCheck struct {
	ValidatorMetadata
	Choices []any
	Coerce  Validator
}

func (c *ChoiceCheck) Apply(value any) (any, error) {
	if c.Coerce != nil {
		var err error
		if value, err = c.Coerce.Apply(value); err != nil {
			return nil, err
		}
	}
	for _, choice := range c.Choices {
		if equal(choice, value) {
			return value, nil
		}
	}
	names := make([]string, len(c.Choices))
	for i, choice := range c.Choices {
		names[i] = stringOf(choice)
	}
	return nil, Errorf("%s is not a valid choice (%s)", repr(value), strings.Join(names, ", "))
}

// Choice accepts only values contained in choices. When coerce is given, the value is coerced before the
// membership test, so Choice([]any{1, 2}, Integer()) accepts "2".
func Choice(choices []any, coerce ...Validator) Validator {
	c := &ChoiceCheck{
		ValidatorMetadata: ValidatorMetadata{name: "choice", description: "one of a fixed set"},
		Choices:           choices,
	}
	if len(coerce) == 1 {
		c.Coerce = coerce[0]
	} else if len(coerce) > 1 {
		c.Coerce = All(coerce...)
	}
	return c
}

// Choices is Choice for string sets
func Choices(choices ...string) Validator {
	set := make([]any, len(choices))
	for i, c := range choices {
		set[i] = c
	}
	return Choice(set)
}

// PatternCheck accepts values matched by a regular expression
type PatternCheck struct {
	ValidatorMetadata
	Pattern *regexp.Regexp
}

func (p *PatternCheck) Apply(value any) (any, error) {
	if !p.Pattern.MatchString(stringOf(value)) {
		return nil, fmt.Errorf("%q does not match %s", stringOf(value), p.Pattern)
	}
	return value, nil
}

// Pattern accepts values whose beginning matches expr. The expression is not anchored at the end.
// Panics if expr does not compile, like regexp.MustCompile.
func Pattern(expr string) Validator {
	return &PatternCheck{
		ValidatorMetadata: ValidatorMetadata{name: "pattern", description: expr},
		Pattern:           regexp.MustCompile(`^(?:` + expr + `)`),
	}
}

// FullPattern accepts values matched entirely by expr
func FullPattern(expr string) Validator {
	return &PatternCheck{
		ValidatorMetadata: ValidatorMetadata{name: "full-pattern", description: expr},
		Pattern:           regexp.MustCompile(`^(?:` + expr + `)$`),
	}
}

// Email accepts values starting with something shaped like an email address
func Email() Validator {
	return Pattern(emailPattern)
}

// IPAddr accepts values starting with a dotted IPv4 address
func IPAddr() Validator {
	return Pattern(ipAddrPattern)
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if !ta.Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}

func repr(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(v)
}
