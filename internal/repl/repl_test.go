package repl

import (
	"strings"
	"testing"
)

func newTestREPL(t *testing.T) (*REPL, *strings.Builder) {
	t.Helper()
	var buf strings.Builder
	color := false
	cfg := DefaultConfig()
	cfg.Color = &color
	return New(cfg, WithOutput(&buf)), &buf
}

func TestEvalLinePrintsValue(t *testing.T) {
	r, buf := newTestREPL(t)
	r.EvalLine("1 + 2")
	if got := buf.String(); got != "3\n" {
		t.Errorf("output = %q, want %q", got, "3\n")
	}
}

func TestBindingsPersistAcrossLines(t *testing.T) {
	r, buf := newTestREPL(t)
	r.EvalLine("let x = 40;")
	r.EvalLine("x + 2")
	if got := buf.String(); got != "42\n" {
		t.Errorf("output = %q, want %q", got, "42\n")
	}
}

func TestNullResultsAreSilent(t *testing.T) {
	r, buf := newTestREPL(t)
	r.EvalLine("let x = 1;")
	if got := buf.String(); got != "" {
		t.Errorf("let should print nothing, got %q", got)
	}
}

func TestPutsWritesToSessionOutput(t *testing.T) {
	r, buf := newTestREPL(t)
	r.EvalLine(`puts("hi")`)
	if got := buf.String(); got != "hi\n" {
		t.Errorf("output = %q, want %q", got, "hi\n")
	}
}

func TestParseErrorShowsSourceLine(t *testing.T) {
	r, buf := newTestREPL(t)
	r.EvalLine("let = 5;")
	out := buf.String()
	if !strings.Contains(out, "error[") {
		t.Errorf("output missing diagnostic header: %q", out)
	}
	if !strings.Contains(out, "<repl>") {
		t.Errorf("output missing <repl> location: %q", out)
	}
	if !strings.Contains(out, "let = 5;") {
		t.Errorf("output missing source snippet: %q", out)
	}
}

func TestRuntimeErrorPrinted(t *testing.T) {
	r, buf := newTestREPL(t)
	r.EvalLine("5 + true")
	out := buf.String()
	if !strings.Contains(out, "type mismatch: INTEGER + BOOLEAN") {
		t.Errorf("output = %q, want type mismatch message", out)
	}
}

func TestSessionSurvivesErrors(t *testing.T) {
	r, buf := newTestREPL(t)
	r.EvalLine("let x = 10;")
	r.EvalLine("nope")
	buf.Reset()
	r.EvalLine("x")
	if got := buf.String(); got != "10\n" {
		t.Errorf("output = %q, want %q", got, "10\n")
	}
}
