package diag

import "fmt"

// Stage identifies which phase produced the diagnostic.
type Stage string

const (
	StageLexer   Stage = "lexer"
	StageParser  Stage = "parser"
	StageRuntime Stage = "runtime"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Parser errors
	CodeParserUnexpectedToken Code = "PARSER_UNEXPECTED_TOKEN"
	CodeParserNoPrefixParse   Code = "PARSER_NO_PREFIX_PARSE"
	CodeParserBadIntegerLit   Code = "PARSER_BAD_INTEGER_LITERAL"

	// Runtime errors
	CodeRuntimeError Code = "RUNTIME_ERROR"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a problem report surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
}

// String renders the diagnostic without source context, for logs and tests.
func (d Diagnostic) String() string {
	sev := d.Severity
	if sev == "" {
		sev = SeverityError
	}
	if d.Span.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Span, sev, d.Message)
	}
	return fmt.Sprintf("%s: %s", sev, d.Message)
}
