// Package interp is a reference interpreter for yot: a direct, slow
// evaluation of the stated semantics. It exists so tests can check the
// compiler's output behavior against an independent implementation, and
// it backs the CLI's --interpret flag. Extern functions cannot be
// interpreted; they only exist at link time.
package interp

import (
	"fmt"

	"github.com/yot-lang/yotc/internal/ast"
	"github.com/yot-lang/yotc/internal/lexer"
	"github.com/yot-lang/yotc/internal/symbols"
)

// Machine interprets one program. Like the compiler it resolves all
// function signatures before evaluating anything, so forward references
// behave identically.
type Machine struct {
	table *symbols.Table
	decls map[string]*ast.FunctionDecl
}

// New builds a machine over the program, recording every signature up
// front.
func New(prog *ast.Program) (*Machine, error) {
	m := &Machine{
		table: symbols.NewTable(),
		decls: make(map[string]*ast.FunctionDecl),
	}
	for _, fn := range prog.Functions {
		kind := symbols.FuncDefined
		if fn.Extern {
			kind = symbols.FuncExtern
		}
		if _, err := m.table.Declare(fn.Name.Name, fn.Arity(), kind); err != nil {
			return nil, err
		}
		m.decls[fn.Name.Name] = fn
	}
	return m, nil
}

// env is one function invocation's variable bindings. Rebinding a name
// replaces its cell, matching the compiler's shadow-and-rebind policy.
type env map[string]*int32

// Call evaluates the named function with the given arguments.
func (m *Machine) Call(name string, args ...int32) (int32, error) {
	sig := m.table.Lookup(name)
	if sig == nil {
		return 0, fmt.Errorf("unresolved function `%s`", name)
	}
	if sig.Arity != len(args) {
		return 0, fmt.Errorf("function `%s` expects %d argument(s), got %d", name, sig.Arity, len(args))
	}
	if sig.Kind == symbols.FuncExtern {
		return 0, fmt.Errorf("cannot interpret extern function `%s`", name)
	}

	fn := m.decls[name]
	vars := make(env, len(fn.Params))
	for i, param := range fn.Params {
		if param.Name == "_" {
			continue
		}
		value := args[i]
		vars[param.Name] = &value
	}

	result, returned, err := m.evalBlock(fn.Body, vars)
	if err != nil {
		return 0, err
	}
	if !returned {
		// Matches the generator's implicit terminator.
		return 0, nil
	}
	return result, nil
}

func (m *Machine) evalBlock(block *ast.Block, vars env) (int32, bool, error) {
	for _, stmt := range block.Stmts {
		result, returned, err := m.evalStatement(stmt, vars)
		if err != nil || returned {
			return result, returned, err
		}
	}
	return 0, false, nil
}

func (m *Machine) evalStatement(stmt ast.Stmt, vars env) (int32, bool, error) {
	switch s := stmt.(type) {
	case *ast.Block:
		return m.evalBlock(s, vars)

	case *ast.VarDeclStmt:
		// Without an initializer the slot's contents are unspecified;
		// the interpreter happens to use zero.
		var value int32
		if s.Value != nil {
			v, err := m.evalExpression(s.Value, vars)
			if err != nil {
				return 0, false, err
			}
			value = v
		}
		if s.Name.Name != "_" {
			vars[s.Name.Name] = &value
		}
		return 0, false, nil

	case *ast.ReturnStmt:
		value, err := m.evalExpression(s.Value, vars)
		return value, true, err

	case *ast.ExprStmt:
		_, err := m.evalExpression(s.Expr, vars)
		return 0, false, err

	case *ast.NoOpStmt:
		return 0, false, nil

	default:
		return 0, false, fmt.Errorf("unsupported statement type %T", stmt)
	}
}

func (m *Machine) evalExpression(expr ast.Expr, vars env) (int32, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return e.Value, nil

	case *ast.Ident:
		cell, ok := vars[e.Name]
		if !ok {
			return 0, fmt.Errorf("unresolved variable `%s`", e.Name)
		}
		return *cell, nil

	case *ast.UnaryExpr:
		value, err := m.evalExpression(e.Operand, vars)
		if err != nil {
			return 0, err
		}
		return -value, nil

	case *ast.BinaryExpr:
		return m.evalBinary(e, vars)

	case *ast.CallExpr:
		args := make([]int32, len(e.Args))
		for i, arg := range e.Args {
			value, err := m.evalExpression(arg, vars)
			if err != nil {
				return 0, err
			}
			args[i] = value
		}
		return m.Call(e.Name.Name, args...)

	default:
		return 0, fmt.Errorf("unsupported expression type %T", expr)
	}
}

func (m *Machine) evalBinary(e *ast.BinaryExpr, vars env) (int32, error) {
	if e.Op == lexer.ASSIGN {
		target, ok := e.Left.(*ast.Ident)
		if !ok {
			return 0, fmt.Errorf("left side of assignment must be a variable")
		}
		value, err := m.evalExpression(e.Right, vars)
		if err != nil {
			return 0, err
		}
		cell, bound := vars[target.Name]
		if !bound {
			return 0, fmt.Errorf("unresolved variable `%s`", target.Name)
		}
		*cell = value
		return value, nil
	}

	left, err := m.evalExpression(e.Left, vars)
	if err != nil {
		return 0, err
	}
	right, err := m.evalExpression(e.Right, vars)
	if err != nil {
		return 0, err
	}

	switch e.Op {
	case lexer.PLUS:
		return left + right, nil
	case lexer.MINUS:
		return left - right, nil
	case lexer.ASTERISK:
		return left * right, nil
	case lexer.SLASH:
		if right == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return left / right, nil
	case lexer.EQ:
		return boolToInt(left == right), nil
	case lexer.NOT_EQ:
		return boolToInt(left != right), nil
	case lexer.LT:
		return boolToInt(left < right), nil
	case lexer.GT:
		return boolToInt(left > right), nil
	case lexer.LE:
		return boolToInt(left <= right), nil
	case lexer.GE:
		return boolToInt(left >= right), nil
	default:
		return 0, fmt.Errorf("unsupported binary operator `%s`", e.Op)
	}
}

// boolToInt realizes the comparisons-yield-exactly-0-or-1 rule.
func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
