package funcopt

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/napalu/funcopt/errs"
	"github.com/napalu/funcopt/internal/util"
	orderedmap "github.com/wk8/go-ordered-map"
)

// Args holds the parsed arguments of one invocation in declaration order: required parameters first, then options,
// then injected streams. Values are keyed by canonical parameter name; options renamed with the x_name convention
// can also be looked up by their public name.
type Args struct {
	values  *orderedmap.OrderedMap
	aliases map[string]string
}

// NewArgs creates an empty Args
func NewArgs() *Args {
	return &Args{values: orderedmap.New(), aliases: map[string]string{}}
}

// ArgsOf creates Args from name/value pairs, mostly useful when calling a Func directly
func ArgsOf(pairs ...any) *Args {
	a := NewArgs()
	for i := 0; i+1 < len(pairs); i += 2 {
		if name, ok := pairs[i].(string); ok {
			a.Set(name, pairs[i+1])
		}
	}
	return a
}

// Set stores value under name
func (a *Args) Set(name string, value any) {
	a.values.Set(name, value)
}

func (a *Args) alias(public, canonical string) {
	a.aliases[public] = canonical
}

func (a *Args) resolve(name string) string {
	if _, ok := a.values.Get(name); ok {
		return name
	}
	if canonical, ok := a.aliases[name]; ok {
		return canonical
	}
	return name
}

// Get returns the value of name and whether it exists
func (a *Args) Get(name string) (any, bool) {
	return a.values.Get(a.resolve(name))
}

// Value returns the value of name or nil
func (a *Args) Value(name string) any {
	v, _ := a.Get(name)
	return v
}

// Has reports whether name exists
func (a *Args) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// IsNil reports whether name is missing or absent. Required arguments of non-strict commands which were not given
// are absent.
func (a *Args) IsNil(name string) bool {
	return a.Value(name) == nil
}

// Names returns the parameter names in order
func (a *Args) Names() []string {
	names := make([]string, 0, a.values.Len())
	for pair := a.values.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key.(string))
	}
	return names
}

// Len returns the number of parameters
func (a *Args) Len() int {
	return a.values.Len()
}

// Map returns a copy of the values keyed by canonical name
func (a *Args) Map() map[string]any {
	m := make(map[string]any, a.values.Len())
	for pair := a.values.Oldest(); pair != nil; pair = pair.Next() {
		m[pair.Key.(string)] = pair.Value
	}
	return m
}

// Lookup returns the value of name converted to T
func Lookup[T any](a *Args, name string) (T, error) {
	var zero T
	v, ok := a.Get(name)
	if !ok {
		return zero, fmt.Errorf(errs.FmtErrorWithString, errs.ErrUnknownParameter, name)
	}
	return util.ConvertTo[T](v)
}

func lookupOrZero[T any](a *Args, name string) T {
	v, _ := Lookup[T](a, name)
	return v
}

// GetString returns the value of name as a string
func (a *Args) GetString(name string) string {
	v := a.Value(name)
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// GetInt returns the value of name as an int or 0
func (a *Args) GetInt(name string) int {
	return lookupOrZero[int](a, name)
}

// GetFloat returns the value of name as a float64 or 0
func (a *Args) GetFloat(name string) float64 {
	return lookupOrZero[float64](a, name)
}

// GetBool returns the value of name as a bool or false
func (a *Args) GetBool(name string) bool {
	return lookupOrZero[bool](a, name)
}

// GetList returns the value of name as a list of strings
func (a *Args) GetList(name string) []string {
	return lookupOrZero[[]string](a, name)
}

// GetTime returns the value of name as a time.Time
func (a *Args) GetTime(name string) time.Time {
	return lookupOrZero[time.Time](a, name)
}

// GetDuration returns the value of name as a time.Duration
func (a *Args) GetDuration(name string) time.Duration {
	return lookupOrZero[time.Duration](a, name)
}

// GetFile returns the file opened for name. Files opened by stream validators must be closed by the caller.
func (a *Args) GetFile(name string) *os.File {
	f, _ := a.Value(name).(*os.File)
	return f
}

// GetReader returns the value of name as an io.Reader, typically an opened file or the bound stdin
func (a *Args) GetReader(name string) io.Reader {
	r, _ := a.Value(name).(io.Reader)
	return r
}

// GetWriter returns the value of name as an io.Writer, typically an opened file or the bound stdout or stderr
func (a *Args) GetWriter(name string) io.Writer {
	w, _ := a.Value(name).(io.Writer)
	return w
}
