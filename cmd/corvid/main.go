// Command corvid runs Corvid programs: an interactive session by default, or
// a file or one-liner given on the command line.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pkg/profile"

	"github.com/corvid-lang/corvid/internal/diag"
	"github.com/corvid-lang/corvid/internal/evaluator"
	"github.com/corvid-lang/corvid/internal/object"
	"github.com/corvid-lang/corvid/internal/parser"
	"github.com/corvid-lang/corvid/internal/repl"
)

type cli struct {
	Profile string `enum:",cpu,mem" default:"" help:"Write a CPU or memory profile to the current directory"`

	Repl replCmd `cmd:"" default:"withargs" help:"Start an interactive session"`
	Run  runCmd  `cmd:"" help:"Evaluate a source file"`
	Eval evalCmd `cmd:"" help:"Evaluate source given on the command line"`
}

type replCmd struct{}

func (c *replCmd) Run() error {
	cfg, err := repl.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring config: %v\n", err)
	}
	return repl.New(cfg).Run()
}

type runCmd struct {
	File string `arg:"" type:"existingfile" help:"Corvid source file"`
}

func (c *runCmd) Run() error {
	src, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	return evalSource(c.File, string(src), false)
}

type evalCmd struct {
	Source string `arg:"" name:"source" help:"Corvid source text"`
}

func (c *evalCmd) Run() error {
	return evalSource("<eval>", c.Source, true)
}

// errExit signals a failure already reported to the user; main exits
// nonzero without printing it again.
var errExit = errors.New("exit")

// evalSource parses and evaluates src. Parse diagnostics and runtime errors
// go to stderr with source context; printValue controls whether a non-null
// final value is echoed, which the one-liner form wants and file execution
// does not.
func evalSource(filename, src string, printValue bool) error {
	p := parser.New(src, parser.WithFilename(filename))
	program := p.ParseProgram()
	if diags := p.Diagnostics(); len(diags) != 0 {
		f := diag.NewFormatter(os.Stderr)
		f.SetSource(filename, src)
		f.FormatAll(diags)
		return errExit
	}

	result := evaluator.New().Eval(program, object.NewEnvironment())
	if err, ok := result.(*object.Error); ok {
		fmt.Fprintln(os.Stderr, err.Inspect())
		return errExit
	}
	if printValue && result != evaluator.Null {
		fmt.Println(result.Inspect())
	}
	return nil
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("corvid"),
		kong.Description("The Corvid programming language"),
		kong.UsageOnError(),
	)

	stop := func() {}
	switch c.Profile {
	case "cpu":
		stop = profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop
	case "mem":
		stop = profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop
	}

	err := ctx.Run()
	stop()
	if err != nil {
		if !errors.Is(err, errExit) {
			fmt.Fprintln(os.Stderr, "corvid: "+err.Error())
		}
		os.Exit(1)
	}
}
