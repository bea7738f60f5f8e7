package parser

import (
	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/lexer"
)

// parseStatement dispatches on the current token. Statements leave curTok on
// their final token (the optional trailing semicolon when present).
func (p *Parser) parseStatement() ast.Stmt {
	switch p.curTok.Type {
	case lexer.LET:
		return p.parseLetStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() ast.Stmt {
	start := p.curTok.Span

	if !p.expect(lexer.IDENT) {
		return nil
	}

	name := ast.NewIdent(p.curTok.Literal, p.curTok.Span)

	if !p.expect(lexer.ASSIGN) {
		return nil
	}

	p.nextToken()

	value := p.parseExpr()
	if value == nil {
		return nil
	}

	if p.peekTok.Type == lexer.SEMICOLON {
		p.nextToken()
	}

	span := mergeSpan(start, p.curTok.Span)
	span = p.spanWithFilename(span)

	return ast.NewLetStmt(name, value, span)
}

func (p *Parser) parseReturnStatement() ast.Stmt {
	start := p.curTok.Span

	// A bare return carries no value.
	if p.peekTok.Type == lexer.SEMICOLON {
		p.nextToken()
		span := p.spanWithFilename(mergeSpan(start, p.curTok.Span))
		return ast.NewReturnStmt(nil, span)
	}
	if p.peekTok.Type == lexer.RBRACE || p.peekTok.Type == lexer.EOF {
		span := p.spanWithFilename(start)
		return ast.NewReturnStmt(nil, span)
	}

	p.nextToken()

	value := p.parseExpr()
	if value == nil {
		return nil
	}

	if p.peekTok.Type == lexer.SEMICOLON {
		p.nextToken()
	}

	span := mergeSpan(start, p.curTok.Span)
	span = p.spanWithFilename(span)

	return ast.NewReturnStmt(value, span)
}

func (p *Parser) parseExpressionStatement() ast.Stmt {
	start := p.curTok.Span

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}

	if p.peekTok.Type == lexer.SEMICOLON {
		p.nextToken()
	}

	span := mergeSpan(start, p.curTok.Span)
	span = p.spanWithFilename(span)

	return ast.NewExprStmt(expr, span)
}

// parseBlockStatement parses "{ stmts }". The caller positions curTok on the
// opening brace; on return curTok sits on the closing brace (or EOF after a
// recorded error for an unterminated block).
func (p *Parser) parseBlockStatement() *ast.BlockStmt {
	start := p.curTok.Span
	block := ast.NewBlockStmt(nil, start)

	p.nextToken()

	for p.curTok.Type != lexer.RBRACE && p.curTok.Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		p.nextToken()
	}

	if p.curTok.Type != lexer.RBRACE {
		p.reportError(
			"expected next token to be '"+string(lexer.RBRACE)+"', got '"+string(lexer.EOF)+"'",
			p.curTok.Span,
		)
	}

	block.SetSpan(p.spanWithFilename(mergeSpan(start, p.curTok.Span)))

	return block
}
