package parser

import (
	"strconv"

	"github.com/yot-lang/yotc/internal/ast"
	"github.com/yot-lang/yotc/internal/diag"
	"github.com/yot-lang/yotc/internal/lexer"
)

// parseExpression is the precedence-climbing core: it parses a prefix
// expression at curTok, then folds in infix operators whose binding power
// exceeds the caller's.
func (p *Parser) parseExpression(precedence int) ast.Expr {
	prefix := p.prefixFns[p.curTok.Type]
	if prefix == nil {
		p.reportExpected("an expression", p.curTok)
		return nil
	}
	left := prefix()

	for left != nil && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekTok.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}

func (p *Parser) parseIdentifier() ast.Expr {
	return ast.NewIdent(p.curTok.Literal, p.curTok.Span)
}

func (p *Parser) parseIntegerLiteral() ast.Expr {
	value, err := strconv.ParseInt(p.curTok.Literal, 10, 32)
	if err != nil {
		p.reportError(diag.CodeParseIntOutOfRange, p.curTok.Span,
			"integer literal `%s` does not fit in 32 bits", p.curTok.Literal)
		return nil
	}
	return ast.NewIntLit(int32(value), p.curTok.Span)
}

// parsePrefixExpr parses unary minus.
func (p *Parser) parsePrefixExpr() ast.Expr {
	start := p.curTok.Span
	op := p.curTok.Type

	p.nextToken()
	operand := p.parseExpression(precedencePrefix)
	if operand == nil {
		return nil
	}

	span := start
	span.End = operand.Span().End
	return ast.NewUnaryExpr(op, operand, span)
}

// parseGroupedExpr parses "(" Expr ")". Grouping influences tree shape
// only; no node is created for the parentheses.
func (p *Parser) parseGroupedExpr() ast.Expr {
	p.nextToken()
	expr := p.parseExpression(precedenceLowest)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return expr
}

// parseInfixExpr parses a left-associative binary operator. curTok is the
// operator.
func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	op := p.curTok.Type
	precedence := precedences[op]

	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}

	span := left.Span()
	span.End = right.Span().End
	return ast.NewBinaryExpr(op, left, right, span)
}

// parseAssignExpr parses `=` right-associatively: `a = b = c` assigns c
// to b, then that value to a. Whether the left side is a valid target is
// checked during code generation.
func (p *Parser) parseAssignExpr(left ast.Expr) ast.Expr {
	p.nextToken()
	right := p.parseExpression(precedenceAssign - 1)
	if right == nil {
		return nil
	}

	span := left.Span()
	span.End = right.Span().End
	return ast.NewBinaryExpr(lexer.ASSIGN, left, right, span)
}

// parseCallExpr parses "(" (Expr ("," Expr)*)? ")" after a callee. Only
// named functions are callable, so the callee must be an identifier.
func (p *Parser) parseCallExpr(callee ast.Expr) ast.Expr {
	name, ok := callee.(*ast.Ident)
	if !ok {
		p.reportExpected("a function name before `(`", p.curTok)
		return nil
	}

	start := name.Span()
	var args []ast.Expr

	if p.peekIs(lexer.RPAREN) {
		p.nextToken()
	} else {
		for {
			p.nextToken()
			arg := p.parseExpression(precedenceLowest)
			if arg == nil {
				return nil
			}
			args = append(args, arg)

			if p.peekIs(lexer.COMMA) {
				p.nextToken()
				continue
			}
			if !p.expectPeek(lexer.RPAREN) {
				return nil
			}
			break
		}
	}

	span := start
	span.End = p.curTok.Span.End
	return ast.NewCallExpr(name, args, span)
}
