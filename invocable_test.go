package funcopt

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/napalu/funcopt/errs"
	"github.com/napalu/funcopt/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeter struct {
	Name     string    `funcopt:"required:true;desc:who to greet"`
	Times    int       `funcopt:"required:true"`
	Greeting string    `funcopt:"choices:hello,hi"`
	Loud     bool      `funcopt:"desc:shout"`
	Ratio    float32   `funcopt:"short:r"`
	Out      io.Writer `funcopt:"stream:stdout"`
	Tags     []string
	Skip     string `funcopt:"-"`
	ready    bool
}

func (g *greeter) Init() error {
	g.ready = true
	return nil
}

type initOnly struct {
	done bool
}

func (i *initOnly) Init() error {
	i.done = true
	return nil
}

type failingInit struct {
	Level int
}

func (f *failingInit) Init() error {
	if f.Level > 3 {
		return errors.New("level too high")
	}
	return nil
}

type adder struct {
	base int
}

func (a adder) Params() []Param {
	return []Param{ArgOf("x", 0), Opt("y", 1)}
}

func (a adder) Call(args *Args) (any, error) {
	return a.base + args.GetInt("x") + args.GetInt("y"), nil
}

type thing struct{}

func (t *thing) DoWork(*Args) (any, error) {
	return "done", nil
}

func TestNewConstructor(t *testing.T) {
	c, err := NewConstructor(greeter{Greeting: "hello", Ratio: 0.5, Skip: "kept"})
	require.NoError(t, err)
	assert.Equal(t, "greeter", c.Name())

	names := make([]string, 0)
	for _, p := range c.Params() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"name", "times", "greeting", "loud", "ratio", "out", "tags"}, names)

	in := introspect(c, nil)
	require.Len(t, in.Required, 2)
	assert.Equal(t, "who to greet", in.Required[0].Help)
	assert.Equal(t, 0, in.Required[1].Default)
	assert.Len(t, in.Optional, 4)
	require.Len(t, in.Streams, 1)
	assert.Equal(t, types.Stdout, in.Streams[0].Stream)

	_, err = NewConstructor(struct{ hidden int }{})
	assert.ErrorIs(t, err, errs.ErrNoConstructor)

	_, err = NewConstructor(&initOnly{})
	assert.NoError(t, err)

	_, err = NewConstructor(42)
	assert.ErrorIs(t, err, errs.ErrNotCallable)

	_, err = NewConstructor(struct {
		Bad string `funcopt:"short:xx"`
	}{})
	assert.ErrorIs(t, err, errs.ErrInvalidTag)
}

func TestConstructorInvoke(t *testing.T) {
	proto := &greeter{Greeting: "hello", Ratio: 0.5, Skip: "kept"}
	s := mustBuild(t, proto)

	greeting, ok := s.Option("greeting")
	require.True(t, ok)
	assert.Equal(t, "g", greeting.Short)
	ratio, _ := s.Option("ratio")
	assert.Equal(t, "r", ratio.Short)

	args, err := Parse(s, []string{"bob", "2", "-g", "hi", "-l", "-r", "1.5", "-t", "x", "-t", "y"})
	require.NoError(t, err)
	var out bytes.Buffer
	args.Set("out", &out)

	result, err := s.Invocable().Invoke(args)
	require.NoError(t, err)
	g, ok := result.(*greeter)
	require.True(t, ok)
	assert.Equal(t, "bob", g.Name)
	assert.Equal(t, 2, g.Times)
	assert.Equal(t, "hi", g.Greeting)
	assert.True(t, g.Loud)
	assert.Equal(t, float32(1.5), g.Ratio)
	assert.Equal(t, []string{"x", "y"}, g.Tags)
	assert.Same(t, &out, g.Out)
	assert.Equal(t, "kept", g.Skip)
	assert.True(t, g.ready)

	assert.Equal(t, "hello", proto.Greeting)
	assert.False(t, proto.ready)

	args, err = Parse(s, []string{"ann", "1"})
	require.NoError(t, err)
	result, err = s.Invocable().Invoke(args)
	require.NoError(t, err)
	assert.Equal(t, "hello", result.(*greeter).Greeting)
	assert.Equal(t, float32(0.5), result.(*greeter).Ratio)

	_, err = Parse(s, []string{"ann", "1", "-g", "yo"})
	assert.ErrorIs(t, err, errs.ErrValidation)
	_, err = Parse(s, []string{"ann", "many"})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestConstructorInitError(t *testing.T) {
	s := mustBuild(t, failingInit{Level: 1})

	args, err := Parse(s, []string{"--level", "5"})
	require.NoError(t, err)
	_, err = s.Invocable().Invoke(args)
	assert.EqualError(t, err, "level too high")

	args = ArgsOf("level", "not a number")
	_, err = s.Invocable().Invoke(args)
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "level", ve.Name)
}

func TestCallOperator(t *testing.T) {
	inv, err := AsInvocable(adder{base: 10})
	require.NoError(t, err)
	_, ok := inv.(*CallOperator)
	require.True(t, ok)
	assert.Equal(t, "adder", inv.Name())

	s := mustBuild(t, inv)
	args, err := Parse(s, []string{"5", "-y", "2"})
	require.NoError(t, err)
	result, err := inv.Invoke(args)
	require.NoError(t, err)
	assert.Equal(t, 17, result)
}

func TestAsInvocable(t *testing.T) {
	fn := NewFunction("f", noop)
	tests := []struct {
		name     string
		target   any
		expected string
		err      error
	}{
		{"invocable", fn, "f", nil},
		{"named func", noop, "noop", nil},
		{"func type", Func(noop), "noop", nil},
		{"method value", (&thing{}).DoWork, "do-work", nil},
		{"caller", &adder{}, "adder", nil},
		{"struct", greeter{}, "greeter", nil},
		{"struct pointer", &greeter{}, "greeter", nil},
		{"string", "x", "", errs.ErrNotCallable},
		{"nil", nil, "", errs.ErrNotCallable},
		{"nil func", Func(nil), "", nil},
		{"wrong signature", func() {}, "", errs.ErrNotCallable},
		{"empty struct", struct{}{}, "", errs.ErrNoConstructor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := AsInvocable(tt.target)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Nil(t, inv)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, inv.Name())
		})
	}
}

func TestErrorFunc(t *testing.T) {
	boom := errors.New("boom")
	inv, err := AsInvocable(func(a *Args) error {
		if a.GetBool("fail") {
			return boom
		}
		return nil
	})
	require.NoError(t, err)

	result, err := inv.Invoke(ArgsOf("fail", false))
	assert.NoError(t, err)
	assert.Nil(t, result)
	_, err = inv.Invoke(ArgsOf("fail", true))
	assert.ErrorIs(t, err, boom)
}

func TestNilFunctionInvoke(t *testing.T) {
	_, err := NewFunction("f", nil).Invoke(NewArgs())
	assert.ErrorIs(t, err, errs.ErrNotCallable)
}

func TestIntrospect(t *testing.T) {
	in, err := Introspect(calc())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "d"}, in.Names)
	assert.Len(t, in.Required, 1)
	assert.Len(t, in.Optional, 2)
	assert.Empty(t, in.Streams)

	in, err = Introspect(NewFunction("f", noop, Arg("in"), StreamArg("out", types.Stdout)))
	require.NoError(t, err)
	assert.Len(t, in.Required, 1)
	assert.Len(t, in.Streams, 1)

	_, err = Introspect(3.14)
	assert.ErrorIs(t, err, errs.ErrNotCallable)
}
