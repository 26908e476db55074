package llvm

import (
	"fmt"
	"strings"

	"github.com/yot-lang/yotc/internal/ast"
	"github.com/yot-lang/yotc/internal/diag"
	"github.com/yot-lang/yotc/internal/lexer"
)

// genExpression translates an expression and returns the i32 operand
// (an immediate or a register) holding its value.
func (g *Generator) genExpression(expr ast.Expr) (string, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return fmt.Sprintf("%d", e.Value), nil

	case *ast.Ident:
		slot, ok := g.scope.Lookup(e.Name)
		if !ok {
			return "", &UnresolvedNameError{Name: e.Name, Kind: NameVariable, Span: e.Span()}
		}
		reg := g.nextReg()
		g.emit(fmt.Sprintf("  %s = load i32, i32* %s", reg, slot))
		return reg, nil

	case *ast.UnaryExpr:
		return g.genUnary(e)

	case *ast.BinaryExpr:
		if e.Op == lexer.ASSIGN {
			return g.genAssign(e)
		}
		return g.genBinary(e)

	case *ast.CallExpr:
		return g.genCall(e)

	default:
		return "", &CodegenError{
			Message: fmt.Sprintf("unsupported expression type %T", expr),
			Span:    expr.Span(),
		}
	}
}

// genUnary emits arithmetic negation as a subtraction from zero.
func (g *Generator) genUnary(e *ast.UnaryExpr) (string, error) {
	operand, err := g.genExpression(e.Operand)
	if err != nil {
		return "", err
	}
	reg := g.nextReg()
	g.emit(fmt.Sprintf("  %s = sub i32 0, %s", reg, operand))
	return reg, nil
}

var arithOps = map[lexer.TokenType]string{
	lexer.PLUS:     "add",
	lexer.MINUS:    "sub",
	lexer.ASTERISK: "mul",
	lexer.SLASH:    "sdiv",
}

var cmpOps = map[lexer.TokenType]string{
	lexer.EQ:     "eq",
	lexer.NOT_EQ: "ne",
	lexer.LT:     "slt",
	lexer.GT:     "sgt",
	lexer.LE:     "sle",
	lexer.GE:     "sge",
}

// genBinary emits arithmetic directly; comparisons produce an i1 that is
// zero-extended to i32, which is how comparisons evaluate to exactly 0
// or 1.
func (g *Generator) genBinary(e *ast.BinaryExpr) (string, error) {
	left, err := g.genExpression(e.Left)
	if err != nil {
		return "", err
	}
	right, err := g.genExpression(e.Right)
	if err != nil {
		return "", err
	}

	if op, ok := arithOps[e.Op]; ok {
		reg := g.nextReg()
		g.emit(fmt.Sprintf("  %s = %s i32 %s, %s", reg, op, left, right))
		return reg, nil
	}

	if pred, ok := cmpOps[e.Op]; ok {
		cmp := g.nextReg()
		g.emit(fmt.Sprintf("  %s = icmp %s i32 %s, %s", cmp, pred, left, right))
		reg := g.nextReg()
		g.emit(fmt.Sprintf("  %s = zext i1 %s to i32", reg, cmp))
		return reg, nil
	}

	return "", &CodegenError{
		Message: fmt.Sprintf("unsupported binary operator `%s`", e.Op),
		Span:    e.Span(),
	}
}

// genAssign stores the right-hand side into the target's slot. The
// expression's result is the stored value, so assignments chain.
func (g *Generator) genAssign(e *ast.BinaryExpr) (string, error) {
	target, ok := e.Left.(*ast.Ident)
	if !ok {
		return "", &CodegenError{
			Code:    diag.CodeInvalidAssignTarget,
			Message: "left side of assignment must be a variable",
			Span:    e.Left.Span(),
		}
	}

	value, err := g.genExpression(e.Right)
	if err != nil {
		return "", err
	}

	slot, ok := g.scope.Lookup(target.Name)
	if !ok {
		return "", &UnresolvedNameError{Name: target.Name, Kind: NameVariable, Span: target.Span()}
	}

	g.emit(fmt.Sprintf("  store i32 %s, i32* %s", value, slot))
	return value, nil
}

// genCall verifies the target and its arity against the function table,
// then emits the call.
func (g *Generator) genCall(e *ast.CallExpr) (string, error) {
	sig := g.funcs.Lookup(e.Name.Name)
	if sig == nil {
		return "", &UnresolvedNameError{Name: e.Name.Name, Kind: NameFunction, Span: e.Name.Span()}
	}
	if sig.Arity != len(e.Args) {
		return "", &ArityMismatchError{
			Name:     e.Name.Name,
			Expected: sig.Arity,
			Actual:   len(e.Args),
			Span:     e.Span(),
		}
	}

	args := make([]string, len(e.Args))
	for i, arg := range e.Args {
		value, err := g.genExpression(arg)
		if err != nil {
			return "", err
		}
		args[i] = "i32 " + value
	}

	reg := g.nextReg()
	g.emit(fmt.Sprintf("  %s = call i32 @%s(%s)", reg, e.Name.Name, strings.Join(args, ", ")))
	return reg, nil
}
