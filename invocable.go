package funcopt

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/napalu/funcopt/errs"
	"github.com/napalu/funcopt/internal/util"
	"github.com/napalu/funcopt/parse"
	"github.com/napalu/funcopt/types"
	"github.com/napalu/funcopt/validation"
)

// Func is the signature of functions run by funcopt
type Func func(*Args) (any, error)

// Caller is implemented by values which can be invoked directly. The receiver is never part of Params.
type Caller interface {
	Params() []Param
	Call(*Args) (any, error)
}

// Initializer is implemented by constructor targets which need to run code once their fields are assigned
type Initializer interface {
	Init() error
}

// Invocable is a target funcopt knows how to introspect and invoke: a *Function, a *Constructor or a
// *CallOperator.
type Invocable interface {
	// Name returns the command name of the target
	Name() string
	// Params returns the parameters in declaration order
	Params() []Param
	// Invoke calls the target with parsed arguments
	Invoke(*Args) (any, error)

	declarations() *Declarations
}

// Introspection is the parameter list of an Invocable split into required and optional parameters
type Introspection struct {
	Names    []string
	Required []Param
	Optional []Param
	Streams  []Param
}

type declared struct {
	decl *Declarations
}

func (d *declared) declarations() *Declarations {
	if d.decl == nil {
		d.decl = NewDeclarations()
	}
	return d.decl
}

// Function is a Go function with an explicit parameter list
type Function struct {
	declared
	name   string
	fn     Func
	params []Param
}

// NewFunction creates a Function. When name is empty, it is derived from the Go identifier of fn in kebab-case;
// anonymous functions should always be given a name.
func NewFunction(name string, fn Func, params ...Param) *Function {
	if name == "" {
		name = funcName(fn)
	}
	return &Function{name: name, fn: fn, params: params}
}

// With attaches declarations. Configuration errors are reported when the schema is built.
func (f *Function) With(configs ...ConfigureFunc) *Function {
	f.declarations().record(configs...)
	return f
}

func (f *Function) Name() string {
	return f.name
}

func (f *Function) Params() []Param {
	return f.params
}

func (f *Function) Invoke(args *Args) (any, error) {
	if f.fn == nil {
		return nil, &errs.NotCallableError{Target: f}
	}
	return f.fn(args)
}

// Constructor builds a new struct value from a prototype. Every exported field is a parameter: fields tagged
// `funcopt:"required:true"` are required positionals and the others are options defaulting to the prototype's
// value. Fields tagged `funcopt:"-"` are ignored.
type Constructor struct {
	declared
	name   string
	proto  reflect.Value
	fields []constructorField
	params []Param
}

type constructorField struct {
	index []int
	param string
}

// NewConstructor creates a Constructor from a struct value or pointer. The prototype is copied and never modified.
func NewConstructor(proto any) (*Constructor, error) {
	if proto == nil {
		return nil, &errs.NotCallableError{Target: proto}
	}
	v := util.UnwrapValue(reflect.ValueOf(proto))
	if v.Kind() != reflect.Struct {
		return nil, &errs.NotCallableError{Target: proto}
	}
	t := v.Type()
	c := &Constructor{name: strcase.ToKebab(t.Name()), proto: v}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Anonymous {
			continue
		}
		tag, err := parse.FieldTag(field)
		if err != nil {
			return nil, err
		}
		if tag.Ignore {
			continue
		}
		name := tag.Name
		if name == "" {
			name = strcase.ToSnake(field.Name)
		}

		p := Param{Name: name, Short: tag.Short, Help: tag.Description, Stream: tag.Stream}
		switch {
		case tag.Stream != types.NoStream:
		case tag.Required:
			p.Default = reflect.Zero(field.Type).Interface()
		default:
			p.Default = v.Field(i).Interface()
			p.HasDefault = true
		}
		c.params = append(c.params, p)
		c.fields = append(c.fields, constructorField{index: field.Index, param: name})

		if len(tag.Choices) > 0 {
			c.declarations().record(WithValidator(validation.Choices(tag.Choices...), name))
		}
	}

	if len(c.params) == 0 && !reflect.PointerTo(t).Implements(initializerType) {
		return nil, &errs.NoConstructorError{Type: t}
	}

	return c, nil
}

var initializerType = reflect.TypeOf((*Initializer)(nil)).Elem()

// With attaches declarations. Configuration errors are reported when the schema is built.
func (c *Constructor) With(configs ...ConfigureFunc) *Constructor {
	c.declarations().record(configs...)
	return c
}

func (c *Constructor) Name() string {
	return c.name
}

func (c *Constructor) Params() []Param {
	return c.params
}

// Invoke returns a pointer to a new struct whose fields hold the parsed arguments
func (c *Constructor) Invoke(args *Args) (any, error) {
	ptr := reflect.New(c.proto.Type())
	ptr.Elem().Set(c.proto)
	for _, f := range c.fields {
		value, ok := args.Get(f.param)
		if !ok {
			continue
		}
		field := ptr.Elem().FieldByIndex(f.index)
		converted, err := util.Convert(value, field.Type())
		if err != nil {
			return nil, &errs.ValidationError{
				Name:    f.param,
				Value:   value,
				Message: fmt.Sprintf("Failed to validate: %q = %q", f.param, fmt.Sprint(value)),
				Err:     err,
			}
		}
		field.Set(converted)
	}

	obj := ptr.Interface()
	if initializer, ok := obj.(Initializer); ok {
		if err := initializer.Init(); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// CallOperator invokes a Caller
type CallOperator struct {
	declared
	name   string
	caller Caller
}

// NewCallOperator creates a CallOperator named after the type of c
func NewCallOperator(c Caller) *CallOperator {
	return &CallOperator{name: typeName(c), caller: c}
}

// With attaches declarations. Configuration errors are reported when the schema is built.
func (o *CallOperator) With(configs ...ConfigureFunc) *CallOperator {
	o.declarations().record(configs...)
	return o
}

func (o *CallOperator) Name() string {
	return o.name
}

func (o *CallOperator) Params() []Param {
	return o.caller.Params()
}

func (o *CallOperator) Invoke(args *Args) (any, error) {
	return o.caller.Call(args)
}

// AsInvocable resolves target to an Invocable. Accepted targets are Invocables, Callers, functions with the
// Func signature or returning only an error, and struct values or pointers, which are treated as constructors.
func AsInvocable(target any) (Invocable, error) {
	switch t := target.(type) {
	case Invocable:
		return t, nil
	case Caller:
		return NewCallOperator(t), nil
	case Func:
		return NewFunction("", t), nil
	case func(*Args) (any, error):
		return NewFunction("", t), nil
	case func(*Args) error:
		return NewFunction(funcName(t), func(a *Args) (any, error) { return nil, t(a) }), nil
	case nil:
		return nil, &errs.NotCallableError{Target: target}
	}

	if util.UnwrapType(reflect.TypeOf(target)).Kind() == reflect.Struct {
		c, err := NewConstructor(target)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, &errs.NotCallableError{Target: target}
}

// Introspect returns the parameters of target split into required, optional and stream parameters
func Introspect(target any) (*Introspection, error) {
	inv, err := AsInvocable(target)
	if err != nil {
		return nil, err
	}
	return introspect(inv, nil), nil
}

func introspect(inv Invocable, streams map[string]types.Stream) *Introspection {
	in := &Introspection{}
	for _, p := range inv.Params() {
		if s, ok := streams[p.Name]; ok {
			p.Stream = s
		}
		in.Names = append(in.Names, p.Name)
		switch {
		case p.Stream != types.NoStream:
			in.Streams = append(in.Streams, p)
		case p.HasDefault:
			in.Optional = append(in.Optional, p)
		default:
			in.Required = append(in.Required, p)
		}
	}
	return in
}

func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return ""
	}
	name := rf.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strcase.ToKebab(strings.TrimSuffix(name, "-fm"))
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	return strcase.ToKebab(util.UnwrapType(t).Name())
}
