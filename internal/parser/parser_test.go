package parser_test

import (
	"testing"

	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/parser"
)

func parseProgram(t *testing.T, src string) (*ast.Program, []parser.ParseError) {
	t.Helper()

	p := parser.New(src)
	program := p.ParseProgram()

	return program, p.Errors()
}

func assertNoErrors(t *testing.T, errs []parser.ParseError) {
	t.Helper()

	if len(errs) == 0 {
		return
	}

	for _, err := range errs {
		t.Errorf("unexpected parse error: %s", err.Message)
	}
	t.Fatalf("parser reported %d error(s)", len(errs))
}

func singleExpr(t *testing.T, program *ast.Program) ast.Expr {
	t.Helper()

	if len(program.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Stmts))
	}

	stmt, ok := program.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected *ast.ExprStmt, got %T", program.Stmts[0])
	}

	return stmt.Expr
}

func TestLetStatements(t *testing.T) {
	tests := []struct {
		input     string
		wantName  string
		wantValue string
	}{
		{"let x = 5;", "x", "5"},
		{"let y = true;", "y", "true"},
		{"let foobar = y;", "foobar", "y"},
		{"let sum = 1 + 2;", "sum", "(1 + 2)"},
	}

	for _, tt := range tests {
		program, errs := parseProgram(t, tt.input)
		assertNoErrors(t, errs)

		if len(program.Stmts) != 1 {
			t.Fatalf("%q - expected 1 statement, got %d", tt.input, len(program.Stmts))
		}

		stmt, ok := program.Stmts[0].(*ast.LetStmt)
		if !ok {
			t.Fatalf("%q - expected *ast.LetStmt, got %T", tt.input, program.Stmts[0])
		}

		if stmt.Name.Name != tt.wantName {
			t.Errorf("%q - name wrong. want=%q, got=%q", tt.input, tt.wantName, stmt.Name.Name)
		}

		if got := stmt.Value.String(); got != tt.wantValue {
			t.Errorf("%q - value wrong. want=%q, got=%q", tt.input, tt.wantValue, got)
		}
	}
}

func TestReturnStatements(t *testing.T) {
	tests := []struct {
		input     string
		wantValue string
	}{
		{"return 5;", "5"},
		{"return x + y;", "(x + y)"},
		{"return;", ""},
	}

	for _, tt := range tests {
		program, errs := parseProgram(t, tt.input)
		assertNoErrors(t, errs)

		if len(program.Stmts) != 1 {
			t.Fatalf("%q - expected 1 statement, got %d", tt.input, len(program.Stmts))
		}

		stmt, ok := program.Stmts[0].(*ast.ReturnStmt)
		if !ok {
			t.Fatalf("%q - expected *ast.ReturnStmt, got %T", tt.input, program.Stmts[0])
		}

		if tt.wantValue == "" {
			if stmt.Value != nil {
				t.Errorf("%q - expected no return value, got %q", tt.input, stmt.Value.String())
			}
			continue
		}

		if got := stmt.Value.String(); got != tt.wantValue {
			t.Errorf("%q - value wrong. want=%q, got=%q", tt.input, tt.wantValue, got)
		}
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"-a * b", "((-a) * b)"},
		{"!-a", "(!(-a))"},
		{"a + b + c", "((a + b) + c)"},
		{"a + b - c", "((a + b) - c)"},
		{"a * b * c", "((a * b) * c)"},
		{"a * b / c", "((a * b) / c)"},
		{"a + b / c", "(a + (b / c))"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f)"},
		{"5 > 4 == 3 < 4", "((5 > 4) == (3 < 4))"},
		{"5 < 4 != 3 > 4", "((5 < 4) != (3 > 4))"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)))"},
		{"true == true", "(true == true)"},
		{"!(true == true)", "(!(true == true))"},
		{"(5 + 5) * 2", "((5 + 5) * 2)"},
		{"2 / (5 + 5)", "(2 / (5 + 5))"},
		{"-(5 + 5)", "(-(5 + 5))"},
		{"a + add(b * c) + d", "((a + add((b * c))) + d)"},
		{"add(a + b + c * d / f + g)", "add((((a + b) + ((c * d) / f)) + g))"},
		{"a * b[2][1]", "(a * (b[2][1]))"},
		{"a * [1, 2, 3, 4][b * c] * d", "((a * ([1, 2, 3, 4][(b * c)])) * d)"},
		{"add(a * b[2], b[1], 2 * [1, 2][1])", "add((a * (b[2])), (b[1]), (2 * ([1, 2][1])))"},
	}

	for _, tt := range tests {
		program, errs := parseProgram(t, tt.input)
		assertNoErrors(t, errs)

		if got := program.String(); got != tt.want {
			t.Errorf("%q - display wrong. want=%q, got=%q", tt.input, tt.want, got)
		}
	}
}

// Display forms must be stable: parsing a program's own display output and
// re-displaying it yields the identical string.
func TestDisplayRoundTrip(t *testing.T) {
	inputs := []string{
		"1 + 2 * 3",
		"-a * b",
		"!true",
		`"hello" + "world"`,
		"[1, 2, 3]",
		"[]",
		"{}",
		`{"a": 1, "b": 2 * 3}`,
		"a[0]",
		"b[2][1]",
		"fn(x, y) { x + y; }",
		"fn() { 1 }",
		"if (x < y) { x } else { y }",
		"if (x) { x }",
		"let x = 5;",
		"return 5;",
		"add(1, 2 * 3, fn(x) { x })",
		"let newAdder = fn(x) { fn(y) { x + y } };",
	}

	for _, input := range inputs {
		program, errs := parseProgram(t, input)
		assertNoErrors(t, errs)

		displayed := program.String()

		reparsed, errs := parseProgram(t, displayed)
		if len(errs) != 0 {
			t.Errorf("%q - displayed form %q does not reparse: %s", input, displayed, errs[0].Message)
			continue
		}

		if got := reparsed.String(); got != displayed {
			t.Errorf("%q - round trip unstable. first=%q, second=%q", input, displayed, got)
		}
	}
}

func TestIfExpr(t *testing.T) {
	program, errs := parseProgram(t, "if (x < y) { x } else { y }")
	assertNoErrors(t, errs)

	expr, ok := singleExpr(t, program).(*ast.IfExpr)
	if !ok {
		t.Fatalf("expected *ast.IfExpr, got %T", singleExpr(t, program))
	}

	if got := expr.Condition.String(); got != "(x < y)" {
		t.Errorf("condition wrong. got=%q", got)
	}
	if len(expr.Consequence.Stmts) != 1 {
		t.Fatalf("consequence has %d statements", len(expr.Consequence.Stmts))
	}
	if expr.Alternative == nil {
		t.Fatalf("expected alternative block")
	}
}

func TestIfExprWithoutElse(t *testing.T) {
	program, errs := parseProgram(t, "if (x) { x }")
	assertNoErrors(t, errs)

	expr, ok := singleExpr(t, program).(*ast.IfExpr)
	if !ok {
		t.Fatalf("expected *ast.IfExpr")
	}
	if expr.Alternative != nil {
		t.Fatalf("expected no alternative block")
	}
}

func TestFunctionLiteralParams(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"fn() {}", []string{}},
		{"fn(x) {}", []string{"x"}},
		{"fn(x, y, z) {}", []string{"x", "y", "z"}},
	}

	for _, tt := range tests {
		program, errs := parseProgram(t, tt.input)
		assertNoErrors(t, errs)

		fn, ok := singleExpr(t, program).(*ast.FunctionLit)
		if !ok {
			t.Fatalf("%q - expected *ast.FunctionLit", tt.input)
		}

		if len(fn.Params) != len(tt.want) {
			t.Fatalf("%q - expected %d params, got %d", tt.input, len(tt.want), len(fn.Params))
		}

		for i, name := range tt.want {
			if fn.Params[i].Name != name {
				t.Errorf("%q - param %d wrong. want=%q, got=%q", tt.input, i, name, fn.Params[i].Name)
			}
		}
	}
}

func TestHashLiteralPreservesPairOrder(t *testing.T) {
	program, errs := parseProgram(t, `{"one": 1, "two": 2, "three": 3}`)
	assertNoErrors(t, errs)

	hash, ok := singleExpr(t, program).(*ast.HashLit)
	if !ok {
		t.Fatalf("expected *ast.HashLit")
	}

	want := []string{`"one"`, `"two"`, `"three"`}
	if len(hash.Pairs) != len(want) {
		t.Fatalf("expected %d pairs, got %d", len(want), len(hash.Pairs))
	}
	for i, key := range want {
		if got := hash.Pairs[i].Key.String(); got != key {
			t.Errorf("pair %d key wrong. want=%q, got=%q", i, key, got)
		}
	}
}

func TestCallExprArgs(t *testing.T) {
	program, errs := parseProgram(t, "add(1, 2 * 3, 4 + 5)")
	assertNoErrors(t, errs)

	call, ok := singleExpr(t, program).(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected *ast.CallExpr")
	}

	if got := call.Callee.String(); got != "add" {
		t.Errorf("callee wrong. got=%q", got)
	}

	want := []string{"1", "(2 * 3)", "(4 + 5)"}
	if len(call.Args) != len(want) {
		t.Fatalf("expected %d args, got %d", len(want), len(call.Args))
	}
	for i, arg := range want {
		if got := call.Args[i].String(); got != arg {
			t.Errorf("arg %d wrong. want=%q, got=%q", i, arg, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input   string
		wantMsg string
	}{
		{"let = 5;", "expected next token to be 'IDENT', got '='"},
		{"let x 5;", "expected next token to be '=', got 'INT'"},
		{"(1 + 2;", "expected next token to be ')', got ';'"},
		{"[1, 2;", "expected ',' or ']' in array literal"},
		{`{"a" 1}`, "expected next token to be ':', got 'INT'"},
	}

	for _, tt := range tests {
		p := parser.New(tt.input)
		p.ParseProgram()

		errs := p.Errors()
		if len(errs) == 0 {
			t.Fatalf("%q - expected parse errors, got none", tt.input)
		}

		if errs[0].Message != tt.wantMsg {
			t.Errorf("%q - message wrong. want=%q, got=%q", tt.input, tt.wantMsg, errs[0].Message)
		}
	}
}

func TestNoPrefixParseError(t *testing.T) {
	p := parser.New("let x = * 5;")
	p.ParseProgram()

	errs := p.Errors()
	if len(errs) == 0 {
		t.Fatalf("expected parse errors, got none")
	}

	if errs[0].Message != "no prefix parse function for '*'" {
		t.Errorf("message wrong. got=%q", errs[0].Message)
	}
}

// A malformed let statement must resync to the next ';' so later statements
// still parse in the same pass.
func TestErrorRecoveryKeepsParsing(t *testing.T) {
	input := "let x 5; let = 10; let z = 3;"

	program, errs := parseProgram(t, input)

	if len(errs) != 2 {
		for _, err := range errs {
			t.Logf("error: %s", err.Message)
		}
		t.Fatalf("expected 2 errors, got %d", len(errs))
	}

	if len(program.Stmts) != 1 {
		t.Fatalf("expected the trailing statement to survive recovery, got %d statements", len(program.Stmts))
	}

	stmt, ok := program.Stmts[0].(*ast.LetStmt)
	if !ok || stmt.Name.Name != "z" {
		t.Fatalf("expected surviving statement to bind z, got %s", program.Stmts[0].String())
	}
}

func TestParserSpansCarryFilename(t *testing.T) {
	p := parser.New("let x = 5;", parser.WithFilename("main.cv"))
	program := p.ParseProgram()
	assertNoErrors(t, p.Errors())

	if got := program.Stmts[0].Span().Filename; got != "main.cv" {
		t.Fatalf("expected filename on statement span, got %q", got)
	}
}

func TestParseErrorToDiagnostic(t *testing.T) {
	p := parser.New("(1 + 2;", parser.WithFilename("<repl>"))
	p.ParseProgram()

	errs := p.Errors()
	if len(errs) == 0 {
		t.Fatalf("expected parse errors")
	}

	d := errs[0].ToDiagnostic()
	if d.Stage != "parser" {
		t.Errorf("stage wrong. got=%q", d.Stage)
	}
	if d.Span.Filename != "<repl>" {
		t.Errorf("filename wrong. got=%q", d.Span.Filename)
	}
	if d.Message != errs[0].Message {
		t.Errorf("message wrong. got=%q", d.Message)
	}
}

func TestBareExpressionStatement(t *testing.T) {
	program, errs := parseProgram(t, "foobar")
	assertNoErrors(t, errs)

	ident, ok := singleExpr(t, program).(*ast.Ident)
	if !ok {
		t.Fatalf("expected *ast.Ident")
	}
	if ident.Name != "foobar" {
		t.Fatalf("name wrong. got=%q", ident.Name)
	}
}
