package funcopt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/napalu/funcopt/errs"
	"github.com/napalu/funcopt/types"
	"github.com/napalu/funcopt/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBuild(t *testing.T, target any) *Schema {
	t.Helper()
	s, err := Build(target)
	require.NoError(t, err)
	return s
}

func TestParseScenarios(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		expected any
	}{
		{"all options", []string{"1", "-b", "3", "-d"}, 10},
		{"defaults", []string{"1"}, -1},
		{"flag only", []string{"1", "-d"}, 7},
		{"long options", []string{"--b=3", "1", "--d"}, 10},
		{"options after positional", []string{"1", "--d", "--b", "3"}, 10},
		{"clustered", []string{"-db3", "1"}, 10},
	}

	s := mustBuild(t, calc())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := Parse(s, tt.argv)
			require.NoError(t, err)
			result, err := s.Invocable().Invoke(args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseValues(t *testing.T) {
	s := mustBuild(t, calc())
	args, err := Parse(s, []string{"1", "-b", "3", "-d"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "d"}, args.Names())
	assert.Equal(t, "1", args.Value("a"))
	assert.Equal(t, 3, args.Value("b"))
	assert.Equal(t, true, args.Value("d"))

	args, err = Parse(s, []string{"1"})
	require.NoError(t, err)
	assert.Equal(t, 2, args.Value("b"))
	assert.Equal(t, false, args.Value("d"))
}

func TestParseArity(t *testing.T) {
	s := mustBuild(t, NewFunction("f", noop, Arg("src"), Arg("dst"), Opt("force", false)))

	_, err := Parse(s, []string{"a", "b", "c", "d"})
	var ue *errs.UsageError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "Extra arguments: c, d", ue.Error())
	assert.Equal(t, []string{"c", "d"}, ue.Extra)

	_, err = Parse(s, []string{})
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "Missing arguments: src, dst", ue.Error())
	assert.Equal(t, []string{"src", "dst"}, ue.Missing)

	_, err = Parse(s, []string{"a", "-f"})
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "Missing argument: dst", ue.Error())
	assert.True(t, errs.IsUserError(err))
}

func TestParseNotStrict(t *testing.T) {
	s := mustBuild(t, NewFunction("f", noop, ArgOf("n", 0), Arg("name")).With(NotStrict()))

	args, err := Parse(s, nil)
	require.NoError(t, err)
	assert.True(t, args.Has("n"))
	assert.True(t, args.IsNil("n"))
	assert.True(t, args.IsNil("name"))

	args, err = Parse(s, []string{"4"})
	require.NoError(t, err)
	assert.Equal(t, 4, args.Value("n"))
	assert.True(t, args.IsNil("name"))

	_, err = Parse(s, []string{"1", "2", "3"})
	assert.ErrorIs(t, err, errs.ErrUsage)
}

func TestParseRename(t *testing.T) {
	s := mustBuild(t, NewFunction("f", noop, Opt("b_far", 3)))

	for _, argv := range [][]string{{"-b", "10"}, {"--far", "10"}, {"--far=10"}, {"--f", "10"}} {
		args, err := Parse(s, argv)
		require.NoError(t, err, argv)
		assert.Equal(t, 10, args.Value("far"), argv)
		assert.Equal(t, 10, args.Value("b_far"), argv)
		assert.Equal(t, []string{"b_far"}, args.Names())
	}

	_, err := Parse(s, []string{"-b", "ten"})
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "b_far", ve.Name)
	assert.Equal(t, "b_far must be an integer", ve.Error())
}

func TestParseValidation(t *testing.T) {
	fn := NewFunction("f", noop, ArgOf("count", 0), Opt("port", 80), Opt("mode", "fast"), Opt("user", "")).With(
		WithValidatorMessage("${name} must be a port number, not '${value}'", validation.Integer(), "port"),
		WithChoices("mode", "fast", "slow"),
		WithFullPattern("user", "[a-z]+"),
	)
	s := mustBuild(t, fn)

	tests := []struct {
		name    string
		argv    []string
		message string
		usage   bool
	}{
		{"inferred positional coercion", []string{"x"}, "count must be an integer", true},
		{"custom message", []string{"1", "--port", "abc"}, "port must be a port number, not 'abc'", false},
		{"choice", []string{"1", "-m", "medium"}, `"medium" is not a valid choice (fast, slow)`, false},
		{"full pattern", []string{"1", "-u", "bob1"}, `Failed to validate: "user" = "bob1"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(s, tt.argv)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValidation)
			assert.Equal(t, tt.usage, errors.Is(err, errs.ErrUsage))
			assert.Equal(t, tt.message, err.Error())
		})
	}

	args, err := Parse(s, []string{"5", "-p", "8080", "-m", "slow", "-u", "bob"})
	require.NoError(t, err)
	assert.Equal(t, 5, args.Value("count"))
	assert.Equal(t, 8080, args.Value("port"))
	assert.Equal(t, "slow", args.Value("mode"))
	assert.Equal(t, "bob", args.Value("user"))
}

func TestParseErrors(t *testing.T) {
	s := mustBuild(t, NewFunction("f", noop, Opt("format", ""), Opt("far", 1), Opt("quiet", false)))

	tests := []struct {
		name    string
		argv    []string
		err     error
		message string
	}{
		{"unknown long", []string{"--bogus"}, errs.ErrUnknownOption, "no such option: --bogus"},
		{"unknown short", []string{"-z"}, errs.ErrUnknownOption, "no such option: -z"},
		{"ambiguous", []string{"--f", "x"}, errs.ErrAmbiguousOption, "ambiguous option: --f (--far, --format?)"},
		{"missing value", []string{"--format"}, errs.ErrOptionExpectsValue, "option requires an argument: --format"},
		{"flag with value", []string{"--quiet=yes"}, errs.ErrOptionTakesNoValue, "option does not take a value: --quiet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(s, tt.argv)
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, errs.ErrUsage)
			assert.EqualError(t, err, tt.message)
		})
	}

	_, err := Parse(s, []string{"-h"})
	assert.ErrorIs(t, err, errs.ErrHelpRequested)
	_, err = Parse(s, []string{"--help"})
	assert.ErrorIs(t, err, errs.ErrHelpRequested)
}

func TestParseAccumulate(t *testing.T) {
	s := mustBuild(t, NewFunction("f", noop, Opt("tag", []string{}), Opt("n", []int{0})))

	args, err := Parse(s, []string{"-t", "a", "--tag=b", "-n", "4"})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, args.Value("tag"))
	assert.Equal(t, []string{"a", "b"}, args.GetList("tag"))
	assert.Equal(t, []any{0, 4}, args.Value("n"))

	args, err = Parse(s, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{}, args.Value("tag"))
}

func TestParseDoubleDash(t *testing.T) {
	s := mustBuild(t, NewFunction("f", noop, Arg("a"), Arg("b"), Opt("verbose", false)))

	args, err := Parse(s, []string{"--", "-v", "-1"})
	require.NoError(t, err)
	assert.Equal(t, "-v", args.Value("a"))
	assert.Equal(t, "-1", args.Value("b"))
	assert.Equal(t, false, args.Value("verbose"))

	args, err = Parse(s, []string{"-", "-2.5"})
	require.NoError(t, err)
	assert.Equal(t, "-", args.Value("a"))
	assert.Equal(t, "-2.5", args.Value("b"))
}

func TestParseString(t *testing.T) {
	s := mustBuild(t, NewFunction("f", noop, Arg("msg"), Opt("count", 1)))

	args, err := ParseString(s, `"hello world" -c 3`)
	require.NoError(t, err)
	assert.Equal(t, "hello world", args.Value("msg"))
	assert.Equal(t, 3, args.Value("count"))

	_, err = ParseString(s, `"unterminated`)
	assert.ErrorIs(t, err, errs.ErrUsage)
}

func TestParseRepeatedOptionValidatesOnce(t *testing.T) {
	calls := 0
	counter := validation.Check("counter", func(string) error {
		calls++
		return nil
	})
	s := mustBuild(t, NewFunction("f", noop, Opt("name", ""), Opt("n", 0)).With(WithValidator(counter, "name")))

	args, err := Parse(s, []string{"--name", "a", "--name", "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "b", args.Value("name"))

	args, err = Parse(s, []string{"--n", "x", "--n", "2"})
	require.NoError(t, err)
	assert.Equal(t, 2, args.Value("n"))
}

type closeCounter struct {
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestParseClosesHandlesOnError(t *testing.T) {
	var handles []*closeCounter
	open := validation.NewCustom("open", "a handle", func(any) (any, error) {
		h := &closeCounter{}
		handles = append(handles, h)
		return h, nil
	})
	s := mustBuild(t, NewFunction("f", noop, Arg("src"), Opt("out", "")).With(WithValidator(open, "out")))

	tests := []struct {
		name   string
		argv   []string
		err    error
		closed int
	}{
		{"missing positional", []string{"--out", "x"}, errs.ErrUsage, 1},
		{"extra positional", []string{"--out", "x", "a", "b"}, errs.ErrUsage, 1},
		{"help", []string{"--out", "x", "-h"}, errs.ErrHelpRequested, 1},
		{"unknown option", []string{"--out", "x", "--nope"}, errs.ErrUsage, 1},
		{"success", []string{"--out", "x", "--out", "y", "a"}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handles = nil
			args, err := Parse(s, tt.argv)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				require.NoError(t, err)
				assert.Same(t, handles[0], args.Value("out"))
			}
			require.Len(t, handles, 1)
			assert.Equal(t, tt.closed, handles[0].closed)
		})
	}
}

func TestParseRepeatedFileOption(t *testing.T) {
	dir := t.TempDir()
	first, second := filepath.Join(dir, "first.txt"), filepath.Join(dir, "second.txt")
	s := mustBuild(t, NewFunction("f", noop, Opt("out", "")).With(WithOpenFile("out", types.File, "w")))

	args, err := Parse(s, []string{"--out", first, "--out", second})
	require.NoError(t, err)
	f := args.GetFile("out")
	require.NotNil(t, f)
	defer f.Close()
	assert.Equal(t, second, f.Name())

	_, err = os.Stat(first)
	assert.True(t, os.IsNotExist(err))
}

func TestParseNegativeNumbers(t *testing.T) {
	s := mustBuild(t, NewFunction("f", noop, ArgOf("n", 0), Opt("a", 0), Opt("a1", 0)))

	args, err := Parse(s, []string{"-1"})
	require.NoError(t, err)
	assert.Equal(t, -1, args.Value("n"))
	assert.Equal(t, 0, args.Value("a1"))
}
