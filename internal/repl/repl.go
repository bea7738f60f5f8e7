// Package repl implements the interactive Corvid session: a line editor with
// history, a persistent environment, and source-annotated error reporting.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/corvid-lang/corvid/internal/diag"
	"github.com/corvid-lang/corvid/internal/evaluator"
	"github.com/corvid-lang/corvid/internal/object"
	"github.com/corvid-lang/corvid/internal/parser"
)

const replFilename = "<repl>"

// REPL is an interactive session. Bindings persist across lines, so a let on
// one line is visible on the next.
type REPL struct {
	cfg       Config
	out       io.Writer
	env       *object.Environment
	eval      *evaluator.Evaluator
	formatter *diag.Formatter
}

// Option configures a REPL.
type Option func(*REPL)

// WithOutput redirects all session output, including program prints.
func WithOutput(w io.Writer) Option {
	return func(r *REPL) { r.out = w }
}

// New creates a session with the given config.
func New(cfg Config, opts ...Option) *REPL {
	r := &REPL{
		cfg: cfg,
		out: os.Stdout,
		env: object.NewEnvironment(),
	}
	for _, opt := range opts {
		opt(r)
	}
	fmtOpts := []diag.Option{}
	if cfg.Color != nil {
		fmtOpts = append(fmtOpts, diag.WithColor(*cfg.Color))
	}
	r.formatter = diag.NewFormatter(r.out, fmtOpts...)
	r.eval = evaluator.New(evaluator.WithOutput(r.out))
	return r
}

// Run drives the line editor until EOF or Ctrl-C on an empty line.
func (r *REPL) Run() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := r.cfg.historyPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(r.cfg.Prompt)
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Fprintln(r.out)
				break
			}
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		r.EvalLine(line)
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return nil
}

// EvalLine parses and evaluates one line against the persistent environment,
// writing either the resulting value or the diagnostics.
func (r *REPL) EvalLine(line string) {
	p := parser.New(line, parser.WithFilename(replFilename))
	program := p.ParseProgram()
	if diags := p.Diagnostics(); len(diags) != 0 {
		r.formatter.SetSource(replFilename, line)
		r.formatter.FormatAll(diags)
		return
	}

	result := r.eval.Eval(program, r.env)
	if result == nil || result == evaluator.Null {
		return
	}
	fmt.Fprintln(r.out, result.Inspect())
}
