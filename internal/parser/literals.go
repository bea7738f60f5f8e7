package parser

import (
	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/lexer"
)

func (p *Parser) parseArrayLiteral() ast.Expr {
	start := p.curTok.Span

	p.nextToken()

	var elements []ast.Expr

	if p.curTok.Type != lexer.RBRACKET {
		elemRes, ok := parseDelimited[ast.Expr](p, delimitedConfig{
			Closing:             lexer.RBRACKET,
			Separator:           lexer.COMMA,
			MissingElementMsg:   "expected expression in array literal",
			MissingSeparatorMsg: "expected ',' or ']' in array literal",
		}, func(int) (ast.Expr, bool) {
			elem := p.parseExpr()
			if elem == nil {
				return nil, false
			}
			return elem, true
		})
		if !ok {
			return nil
		}

		elements = elemRes.Items
	}

	span := mergeSpan(start, p.curTok.Span)
	span = p.spanWithFilename(span)

	return ast.NewArrayLit(elements, span)
}

func (p *Parser) parseHashLiteral() ast.Expr {
	start := p.curTok.Span

	p.nextToken()

	var pairs []ast.HashPair

	if p.curTok.Type != lexer.RBRACE {
		pairRes, ok := parseDelimited[ast.HashPair](p, delimitedConfig{
			Closing:             lexer.RBRACE,
			Separator:           lexer.COMMA,
			MissingElementMsg:   "expected expression in hash literal",
			MissingSeparatorMsg: "expected ',' or '}' in hash literal",
		}, func(int) (ast.HashPair, bool) {
			key := p.parseExpr()
			if key == nil {
				return ast.HashPair{}, false
			}

			if !p.expect(lexer.COLON) {
				return ast.HashPair{}, false
			}

			p.nextToken()

			value := p.parseExpr()
			if value == nil {
				return ast.HashPair{}, false
			}

			return ast.HashPair{Key: key, Value: value}, true
		})
		if !ok {
			return nil
		}

		pairs = pairRes.Items
	}

	span := mergeSpan(start, p.curTok.Span)
	span = p.spanWithFilename(span)

	return ast.NewHashLit(pairs, span)
}

func (p *Parser) parseFunctionLiteral() ast.Expr {
	start := p.curTok.Span

	if !p.expect(lexer.LPAREN) {
		return nil
	}

	var params []*ast.Ident

	if p.peekTok.Type == lexer.RPAREN {
		p.nextToken()
	} else {
		p.nextToken()

		paramRes, ok := parseDelimited[*ast.Ident](p, delimitedConfig{
			Closing:             lexer.RPAREN,
			Separator:           lexer.COMMA,
			MissingElementMsg:   "expected parameter name",
			MissingSeparatorMsg: "expected ',' or ')' in parameter list",
		}, func(int) (*ast.Ident, bool) {
			if p.curTok.Type != lexer.IDENT {
				p.reportError("expected parameter name", p.curTok.Span)
				return nil, false
			}
			return ast.NewIdent(p.curTok.Literal, p.curTok.Span), true
		})
		if !ok {
			return nil
		}

		params = paramRes.Items
	}

	if !p.expect(lexer.LBRACE) {
		return nil
	}

	body := p.parseBlockStatement()
	if body == nil {
		return nil
	}

	span := mergeSpan(start, body.Span())
	span = p.spanWithFilename(span)

	return ast.NewFunctionLit(params, body, span)
}
