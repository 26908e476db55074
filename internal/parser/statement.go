package parser

import (
	"github.com/yot-lang/yotc/internal/ast"
	"github.com/yot-lang/yotc/internal/lexer"
)

// parseStatement dispatches on the statement's leading token. Every
// statement consumes its trailing semicolon, so curTok is the final
// token of the statement on return.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.curTok.Type {
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.ARROW:
		return p.parseReturnStmt()
	case lexer.AT:
		return p.parseVarDeclStmt()
	case lexer.SEMICOLON:
		return ast.NewNoOpStmt(p.curTok.Span)
	default:
		return p.parseExprStmt()
	}
}

// parseBlock parses "{" Statement* "}". curTok must be the opening brace.
func (p *Parser) parseBlock() *ast.Block {
	start := p.curTok.Span
	p.nextToken()

	var stmts []ast.Stmt
	for !p.curIs(lexer.RBRACE) {
		if p.curIs(lexer.EOF) {
			p.reportExpected("`}`", p.curTok)
			return nil
		}
		stmt := p.parseStatement()
		if p.failed() {
			return nil
		}
		stmts = append(stmts, stmt)
		p.nextToken()
	}

	span := start
	span.End = p.curTok.Span.End
	return ast.NewBlock(stmts, span)
}

// parseReturnStmt parses "->" Expr ";". curTok must be the arrow.
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.curTok.Span
	p.nextToken()

	value := p.parseExpression(precedenceLowest)
	if value == nil {
		return nil
	}
	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}

	span := start
	span.End = p.curTok.Span.End
	return ast.NewReturnStmt(value, span)
}

// parseVarDeclStmt parses "@" Name ("=" Expr)? ";". curTok must be the
// sigil.
func (p *Parser) parseVarDeclStmt() *ast.VarDeclStmt {
	start := p.curTok.Span

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Literal, p.curTok.Span)

	var value ast.Expr
	if p.peekIs(lexer.ASSIGN) {
		p.nextToken()
		p.nextToken()
		value = p.parseExpression(precedenceLowest)
		if value == nil {
			return nil
		}
	}

	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}

	span := start
	span.End = p.curTok.Span.End
	return ast.NewVarDeclStmt(name, value, span)
}

// parseExprStmt parses Expr ";".
func (p *Parser) parseExprStmt() *ast.ExprStmt {
	start := p.curTok.Span

	expr := p.parseExpression(precedenceLowest)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}

	span := start
	span.End = p.curTok.Span.End
	return ast.NewExprStmt(expr, span)
}
