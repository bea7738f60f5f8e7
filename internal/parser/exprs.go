package parser

import (
	"strconv"

	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/diag"
	"github.com/corvid-lang/corvid/internal/lexer"
)

func (p *Parser) parseExpr() ast.Expr {
	return p.parseExprPrecedence(precedenceLowest)
}

func (p *Parser) parseExprPrecedence(precedence int) ast.Expr {
	prefix := p.prefixFns[p.curTok.Type]
	if prefix == nil {
		p.reportErrorCode(
			"no prefix parse function for '"+string(p.curTok.Type)+"'",
			diag.CodeParserNoPrefixParse,
			p.curTok.Span,
		)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for p.peekTok.Type != lexer.SEMICOLON && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekTok.Type]
		if infix == nil {
			break
		}

		p.nextToken()

		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parseIdentifier() ast.Expr {
	return ast.NewIdent(p.curTok.Literal, p.curTok.Span)
}

func (p *Parser) parseIntegerLiteral() ast.Expr {
	value, err := strconv.ParseInt(p.curTok.Literal, 10, 64)
	if err != nil {
		p.reportErrorCode(
			"could not parse "+strconv.Quote(p.curTok.Literal)+" as integer",
			diag.CodeParserBadIntegerLit,
			p.curTok.Span,
		)
		return nil
	}

	return ast.NewIntegerLit(value, p.curTok.Span)
}

func (p *Parser) parseStringLiteral() ast.Expr {
	return ast.NewStringLit(p.curTok.Literal, p.curTok.Span)
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	return ast.NewBoolLit(p.curTok.Type == lexer.TRUE, p.curTok.Span)
}

// parsePrefixExpr handles prefix operators registered via registerPrefix. It
// must consume the operator before recursing so Pratt precedence (see
// precedencePrefix) controls binding.
func (p *Parser) parsePrefixExpr() ast.Expr {
	operatorTok := p.curTok

	p.nextToken()

	right := p.parseExprPrecedence(precedencePrefix)
	if right == nil {
		return nil
	}

	span := mergeSpan(operatorTok.Span, right.Span())
	span = p.spanWithFilename(span)

	return ast.NewPrefixExpr(operatorTok.Type, right, span)
}

// spanSetter is satisfied by nodes that expose SetSpan. parseGroupedExpr uses it
// to widen spans without wrapping the underlying node in a synthetic AST type.
type spanSetter interface {
	SetSpan(lexer.Span)
}

// parseGroupedExpr parses "(expr)" without introducing an explicit ParenExpr
// node. Instead, it rewrites the span on the parsed sub-expression. This keeps
// the AST lean while preserving span fidelity for diagnostics.
func (p *Parser) parseGroupedExpr() ast.Expr {
	start := p.curTok.Span

	p.nextToken()

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}

	span := mergeSpan(start, expr.Span())
	span = mergeSpan(span, p.curTok.Span)
	span = p.spanWithFilename(span)

	if setter, ok := expr.(spanSetter); ok {
		setter.SetSpan(span)
	}

	return expr
}

func (p *Parser) parseIfExpr() ast.Expr {
	start := p.curTok.Span

	if !p.expect(lexer.LPAREN) {
		return nil
	}

	p.nextToken()

	condition := p.parseExpr()
	if condition == nil {
		return nil
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}

	if !p.expect(lexer.LBRACE) {
		return nil
	}

	consequence := p.parseBlockStatement()
	if consequence == nil {
		return nil
	}

	var alternative *ast.BlockStmt

	if p.peekTok.Type == lexer.ELSE {
		p.nextToken()

		if !p.expect(lexer.LBRACE) {
			return nil
		}

		alternative = p.parseBlockStatement()
		if alternative == nil {
			return nil
		}
	}

	span := mergeSpan(start, consequence.Span())
	if alternative != nil {
		span = mergeSpan(span, alternative.Span())
	}
	span = p.spanWithFilename(span)

	return ast.NewIfExpr(condition, consequence, alternative, span)
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	operatorTok := p.curTok
	precedence := p.curPrecedence()

	p.nextToken()

	right := p.parseExprPrecedence(precedence)
	if right == nil {
		return nil
	}

	span := mergeSpan(left.Span(), operatorTok.Span)
	span = mergeSpan(span, right.Span())
	span = p.spanWithFilename(span)

	return ast.NewInfixExpr(operatorTok.Type, left, right, span)
}

// parseCallExpr treats '(' as an infix operator so calls compose with normal
// precedence climbing instead of a special-cased grammar rule.
func (p *Parser) parseCallExpr(callee ast.Expr) ast.Expr {
	openTok := p.curTok

	p.nextToken()

	var args []ast.Expr

	if p.curTok.Type != lexer.RPAREN {
		argRes, ok := parseDelimited[ast.Expr](p, delimitedConfig{
			Closing:             lexer.RPAREN,
			Separator:           lexer.COMMA,
			MissingElementMsg:   "expected expression",
			MissingSeparatorMsg: "expected ',' or ')' after argument",
		}, func(int) (ast.Expr, bool) {
			arg := p.parseExpr()
			if arg == nil {
				return nil, false
			}
			return arg, true
		})
		if !ok {
			return nil
		}

		args = argRes.Items
	}

	span := mergeSpan(callee.Span(), openTok.Span)
	span = mergeSpan(span, p.curTok.Span)
	span = p.spanWithFilename(span)

	return ast.NewCallExpr(callee, args, span)
}

// parseIndexExpr treats '[' as an infix operator, mirroring parseCallExpr.
func (p *Parser) parseIndexExpr(target ast.Expr) ast.Expr {
	openTok := p.curTok

	p.nextToken()

	index := p.parseExpr()
	if index == nil {
		return nil
	}

	if !p.expect(lexer.RBRACKET) {
		return nil
	}

	span := mergeSpan(target.Span(), openTok.Span)
	span = mergeSpan(span, index.Span())
	span = mergeSpan(span, p.curTok.Span)
	span = p.spanWithFilename(span)

	return ast.NewIndexExpr(target, index, span)
}
