package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/napalu/funcopt"
	"github.com/napalu/funcopt/types"
)

type Greeting struct {
	Name  string    `funcopt:"required:true;desc:who to greet"`
	Times int       `funcopt:"desc:how many times"`
	Style string    `funcopt:"short:s;choices:plain,shout,whisper;desc:how to say it"`
	Out   io.Writer `funcopt:"stream:stdout"`
}

func (g *Greeting) Init() error {
	msg := "Hello, " + g.Name
	switch g.Style {
	case "shout":
		msg = strings.ToUpper(msg) + "!"
	case "whisper":
		msg = strings.ToLower(msg) + "..."
	}
	for i := 0; i < g.Times; i++ {
		if _, err := fmt.Fprintln(g.Out, msg); err != nil {
			return err
		}
	}
	return nil
}

func add(a *funcopt.Args) (any, error) {
	sum := 0
	for _, v := range a.GetList("more") {
		var n int
		if _, err := fmt.Sscan(v, &n); err != nil {
			return nil, err
		}
		sum += n
	}
	fmt.Fprintln(a.GetWriter("out"), a.GetInt("a")+a.GetInt("b")+sum)
	return funcopt.StatusOK, nil
}

func head(a *funcopt.Args) (any, error) {
	f := a.GetFile("file")
	defer f.Close()

	out := a.GetWriter("out")
	scanner := bufio.NewScanner(f)
	for n := 0; n < a.GetInt("lines") && scanner.Scan(); n++ {
		if a.GetBool("number") {
			fmt.Fprintf(out, "%6d  ", n+1)
		}
		fmt.Fprintln(out, scanner.Text())
	}
	return funcopt.StatusOK, scanner.Err()
}

func sleep(a *funcopt.Args) (any, error) {
	d := a.GetDuration("for")
	time.Sleep(d)
	fmt.Fprintf(a.GetWriter("out"), "slept %s\n", d)
	return funcopt.StatusOK, nil
}

func main() {
	r, err := funcopt.NewRunner()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	targets := []any{
		funcopt.NewFunction("add", add,
			funcopt.ArgOf("a", 0).Describe("first operand"),
			funcopt.ArgOf("b", 0).Describe("second operand"),
			funcopt.Opt("more", []string{}).Describe("further operands"),
			funcopt.StreamArg("out", types.Stdout),
		).With(funcopt.WithDescription("add integers")),
		funcopt.NewFunction("head", head,
			funcopt.Arg("file"),
			funcopt.Opt("lines", 10).Describe("number of lines to print"),
			funcopt.Opt("number", false).Describe("number output lines"),
			funcopt.StreamArg("out", types.Stdout),
		).With(
			funcopt.WithDescription("print the first lines of a file"),
			funcopt.WithOpenFile("file", types.File|types.Exists, "r"),
		),
		funcopt.NewFunction("sleep", sleep,
			funcopt.Opt("for", time.Second),
			funcopt.StreamArg("out", types.Stdout),
		).With(funcopt.WithDescription("wait for a duration")),
		mustDeclare(Greeting{Times: 1, Style: "plain"}, funcopt.WithDescription("greet someone")),
	}
	targets = append(targets, funcopt.NewFunction("completion", func(a *funcopt.Args) (any, error) {
		script, err := r.Completion(a.GetString("shell"), targets...)
		if err != nil {
			return nil, err
		}
		_, err = io.WriteString(a.GetWriter("out"), script)
		return funcopt.StatusOK, err
	}, funcopt.Arg("shell"), funcopt.StreamArg("out", types.Stdout)).With(
		funcopt.WithDescription("print a shell completion script"),
		funcopt.WithChoices("shell", "bash", "zsh", "fish"),
	))

	result, err := r.RunMany(targets, os.Args[1:])
	if _, ok := result.(*Greeting); ok {
		result = funcopt.StatusOK
	}
	os.Exit(funcopt.ExitCode(result, err))
}

func mustDeclare(target any, configs ...funcopt.ConfigureFunc) funcopt.Invocable {
	inv, err := funcopt.Declare(target, configs...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return inv
}
