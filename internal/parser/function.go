package parser

import (
	"github.com/yot-lang/yotc/internal/ast"
	"github.com/yot-lang/yotc/internal/diag"
	"github.com/yot-lang/yotc/internal/lexer"
)

// parseFunctionDecl parses one top-level declaration:
//
//	"@" Name "[" ParamList "]" (Block | "->" Expr ";")
//	"@!" Name "[" ParamList "]" ";"
//
// curTok must be the leading sigil; on success curTok is the final token
// of the declaration.
func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	start := p.curTok.Span

	var extern bool
	switch p.curTok.Type {
	case lexer.AT:
	case lexer.ATBANG:
		extern = true
	default:
		p.reportExpected("`@` or `@!` (only top-level functions are allowed)", p.curTok)
		return nil
	}

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Literal, p.curTok.Span)

	if !p.expectPeek(lexer.LBRACKET) {
		return nil
	}
	params := p.parseParamList(name.Name)
	if p.failed() {
		return nil
	}

	if extern {
		if p.peekIs(lexer.LBRACE) || p.peekIs(lexer.ARROW) {
			p.reportError(diag.CodeExternWithBody, p.peekTok.Span,
				"extern function `%s` must not have a body", name.Name)
			return nil
		}
		if !p.expectPeek(lexer.SEMICOLON) {
			return nil
		}
		span := start
		span.End = p.curTok.Span.End
		return ast.NewFunctionDecl(name, params, true, nil, span)
	}

	var body *ast.Block
	switch {
	case p.peekIs(lexer.LBRACE):
		p.nextToken()
		body = p.parseBlock()
	case p.peekIs(lexer.ARROW):
		p.nextToken()
		body = p.parseShorthandBody()
	default:
		p.reportError(diag.CodeMissingBody, p.peekTok.Span,
			"function `%s` must have a block or `->` body", name.Name)
		return nil
	}
	if p.failed() {
		return nil
	}

	span := start
	span.End = p.curTok.Span.End
	return ast.NewFunctionDecl(name, params, false, body, span)
}

// parseParamList parses "[" (Name ("," Name)*)? "]". curTok must be the
// opening bracket; on success curTok is the closing bracket. Parameter
// names must be distinct, except `_` which never binds.
func (p *Parser) parseParamList(fnName string) []*ast.Ident {
	var params []*ast.Ident

	if p.peekIs(lexer.RBRACKET) {
		p.nextToken()
		return params
	}

	seen := make(map[string]bool)
	for {
		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		name := p.curTok.Literal
		if name != "_" && seen[name] {
			p.reportError(diag.CodeParseDuplicateParam, p.curTok.Span,
				"duplicate parameter `%s` in function `%s`", name, fnName)
			return nil
		}
		seen[name] = true
		params = append(params, ast.NewIdent(name, p.curTok.Span))

		switch {
		case p.peekIs(lexer.COMMA):
			p.nextToken()
		case p.peekIs(lexer.RBRACKET):
			p.nextToken()
			return params
		default:
			p.reportExpected("`,` or `]`", p.peekTok)
			return nil
		}
	}
}

// parseShorthandBody desugars `-> expr ;` into a block holding a single
// return statement, making the shorthand observably equivalent to the
// braced form. curTok must be the arrow.
func (p *Parser) parseShorthandBody() *ast.Block {
	ret := p.parseReturnStmt()
	if ret == nil {
		return nil
	}
	return ast.NewBlock([]ast.Stmt{ret}, ret.Span())
}
