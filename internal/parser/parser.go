package parser

import (
	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/diag"
	"github.com/corvid-lang/corvid/internal/lexer"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Option configures a Parser.
type Option func(*options)

type options struct {
	filename string
}

// WithFilename configures the parser to attribute all emitted spans to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// Precedence levels, lowest binding to highest. Parsing an expression at
// precedence p consumes infix operators whose precedence is strictly greater
// than p, which yields left-associative trees for equal-precedence chains.
const (
	precedenceLowest = iota
	precedenceEquals
	precedenceComparison
	precedenceSum
	precedenceProduct
	precedencePrefix
	precedenceCall
	precedenceIndex
)

var precedences = map[lexer.TokenType]int{
	lexer.EQ:       precedenceEquals,
	lexer.NOT_EQ:   precedenceEquals,
	lexer.LT:       precedenceComparison,
	lexer.GT:       precedenceComparison,
	lexer.PLUS:     precedenceSum,
	lexer.MINUS:    precedenceSum,
	lexer.ASTERISK: precedenceProduct,
	lexer.SLASH:    precedenceProduct,
	lexer.LPAREN:   precedenceCall,
	lexer.LBRACKET: precedenceIndex,
}

// ParseError captures a recoverable parsing error with location context.
type ParseError struct {
	Message  string
	Span     lexer.Span
	Severity diag.Severity
	Code     diag.Code
}

// ToDiagnostic converts a parse error into a shared diagnostic structure.
func (e ParseError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: e.Severity,
		Code:     e.Code,
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

// Parser implements a Pratt-style recursive descent parser for Corvid.
// Invariants:
//   - Lookahead: curTok always reflects the token currently under examination;
//     peekTok mirrors the next token pulled from the lexer. The pair forms the
//     parser's sole lookahead window and is only mutated via nextToken.
//   - Diagnostics: errors is an append-only accumulator of recoverable
//     diagnostics. Callers are expected to consult Errors() after ParseProgram
//     to surface them; a non-empty list means the program must not be
//     evaluated.
//   - Statements leave curTok on their final token; the statement loops are
//     the only places that step past it.
type Parser struct {
	lx      *lexer.Lexer
	curTok  lexer.Token
	peekTok lexer.Token

	errors []ParseError

	filename string

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New returns a parser initialised with the provided source input.
func New(input string, opts ...Option) *Parser {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Parser{
		lx:        lexer.New(input),
		prefixFns: make(map[lexer.TokenType]prefixParseFn),
		infixFns:  make(map[lexer.TokenType]infixParseFn),
		filename:  cfg.filename,
	}

	if cfg.filename != "" {
		p.lx.SetFilename(cfg.filename)
	}

	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.INT, p.parseIntegerLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBoolLiteral)
	p.registerPrefix(lexer.FALSE, p.parseBoolLiteral)
	p.registerPrefix(lexer.MINUS, p.parsePrefixExpr)
	p.registerPrefix(lexer.BANG, p.parsePrefixExpr)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(lexer.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(lexer.LBRACE, p.parseHashLiteral)
	p.registerPrefix(lexer.IF, p.parseIfExpr)
	p.registerPrefix(lexer.FN, p.parseFunctionLiteral)

	p.registerInfix(lexer.PLUS, p.parseInfixExpr)
	p.registerInfix(lexer.MINUS, p.parseInfixExpr)
	p.registerInfix(lexer.ASTERISK, p.parseInfixExpr)
	p.registerInfix(lexer.SLASH, p.parseInfixExpr)
	p.registerInfix(lexer.EQ, p.parseInfixExpr)
	p.registerInfix(lexer.NOT_EQ, p.parseInfixExpr)
	p.registerInfix(lexer.LT, p.parseInfixExpr)
	p.registerInfix(lexer.GT, p.parseInfixExpr)
	p.registerInfix(lexer.LPAREN, p.parseCallExpr)
	p.registerInfix(lexer.LBRACKET, p.parseIndexExpr)

	// Seed curTok/peekTok.
	p.nextToken()
	p.nextToken()

	return p
}

// Errors returns all recoverable parse errors that were encountered.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// Diagnostics converts the accumulated parse errors into shared diagnostics.
func (p *Parser) Diagnostics() []diag.Diagnostic {
	ds := make([]diag.Diagnostic, len(p.errors))
	for i, err := range p.errors {
		ds[i] = err.ToDiagnostic()
	}
	return ds
}

// ParseProgram consumes the entire token stream and returns the program AST.
// Parsing never stops at the first error: malformed statements are recorded
// and the cursor resyncs to the next ';' (or a statement keyword) so a single
// pass can report multiple problems.
func (p *Parser) ParseProgram() *ast.Program {
	program := ast.NewProgram(p.curTok.Span)

	for p.curTok.Type != lexer.EOF {
		prevTok := p.curTok
		stmt := p.parseStatement()
		if stmt != nil {
			program.Stmts = append(program.Stmts, stmt)
			program.SetSpan(mergeSpan(program.Span(), stmt.Span()))
			p.nextToken()
			continue
		}

		p.recoverStatement(prevTok)
	}

	program.SetSpan(mergeSpan(program.Span(), p.curTok.Span))

	return program
}

// nextToken advances the parser's token window.
// Contract: after calling nextToken, curTok == old(peekTok). The lexer is only
// queried from this hop to keep lookahead bookkeeping centralized.
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.lx.NextToken()
}

// expect asserts that the peek token matches the provided type.
// The caller is responsible for inspecting curTok before invoking expect,
// because expect never rewinds; on success it promotes peekTok into curTok.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.peekTok.Type == tt {
		p.nextToken()
		return true
	}

	p.reportErrorCode(
		"expected next token to be '"+string(tt)+"', got '"+string(p.peekTok.Type)+"'",
		diag.CodeParserUnexpectedToken,
		p.peekTok.Span,
	)
	return false
}

// reportError records a recoverable diagnostic without aborting parsing. All
// call sites must supply the best-effort span available at the failure site.
func (p *Parser) reportError(msg string, span lexer.Span) {
	p.reportErrorCode(msg, diag.CodeParserUnexpectedToken, span)
}

func (p *Parser) reportErrorCode(msg string, code diag.Code, span lexer.Span) {
	span = p.spanWithFilename(span)
	p.errors = append(p.errors, ParseError{
		Message:  msg,
		Span:     span,
		Severity: diag.SeverityError,
		Code:     code,
	})
}

func (p *Parser) spanWithFilename(span lexer.Span) lexer.Span {
	if span.Filename == "" && p.filename != "" {
		span.Filename = p.filename
	}
	return span
}

func (p *Parser) registerPrefix(tokenType lexer.TokenType, fn prefixParseFn) {
	p.prefixFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType lexer.TokenType, fn infixParseFn) {
	p.infixFns[tokenType] = fn
}

func sameTokenPosition(a, b lexer.Token) bool {
	return a.Type == b.Type && a.Span.Start == b.Span.Start && a.Span.End == b.Span.End
}

func isStatementStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.LET, lexer.RETURN:
		return true
	default:
		return false
	}
}

// recoverStatement advances the cursor past a malformed statement: it scans to
// the next ';' (consuming it) or stops at a token that can begin a statement,
// so the outer loop can resume with fresh context.
func (p *Parser) recoverStatement(prev lexer.Token) {
	if p.curTok.Type == lexer.EOF {
		return
	}

	if sameTokenPosition(p.curTok, prev) {
		p.nextToken()
	}

	for p.curTok.Type != lexer.EOF {
		switch {
		case p.curTok.Type == lexer.SEMICOLON:
			p.nextToken()
			return
		case isStatementStart(p.curTok.Type):
			return
		}

		p.nextToken()
	}
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekTok.Type]; ok {
		return prec
	}

	return precedenceLowest
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curTok.Type]; ok {
		return prec
	}

	return precedenceLowest
}

// mergeSpan assumes start.End <= end.End and returns a span covering both.
// The parser relies on lexer spans being half-open; callers should pass the
// earliest start span first to preserve monotonic growth for AST nodes.
func mergeSpan(start, end lexer.Span) lexer.Span {
	span := start

	if span.Filename == "" {
		span.Filename = end.Filename
	}

	if span.Line == 0 && end.Line != 0 {
		span.Line = end.Line
		span.Column = end.Column
		span.Start = end.Start
	}

	if end.End > span.End {
		span.End = end.End
	}

	return span
}
