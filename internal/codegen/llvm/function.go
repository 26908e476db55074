package llvm

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yot-lang/yotc/internal/ast"
	"github.com/yot-lang/yotc/internal/symbols"
)

// emitExternDecl emits a declaration-only prototype for an extern
// function; the symbol is resolved at link time.
func (g *Generator) emitExternDecl(fn *ast.FunctionDecl) {
	g.emit(fmt.Sprintf("declare i32 @%s(%s)", fn.Name.Name, paramTypes(fn.Arity())))
}

// genFunction emits a define with a single entry block. Parameters are
// passed in %p<i> registers and immediately spilled to alloca slots so
// that assignment can rewrite them; promoting the slots back to registers
// is the backend optimizer's job.
func (g *Generator) genFunction(fn *ast.FunctionDecl) error {
	g.logger.Debug("generating function", zap.String("name", fn.Name.Name))

	g.scope = symbols.NewScope()
	g.regCounter = 0
	g.terminated = false

	params := make([]string, fn.Arity())
	for i := range params {
		params[i] = fmt.Sprintf("i32 %%p%d", i)
	}
	g.emit(fmt.Sprintf("define i32 @%s(%s) {", fn.Name.Name, strings.Join(params, ", ")))
	g.emit("entry:")

	for i, param := range fn.Params {
		slot := g.nextReg()
		g.emit(fmt.Sprintf("  %s = alloca i32", slot))
		g.emit(fmt.Sprintf("  store i32 %%p%d, i32* %s", i, slot))
		if param.Name != "_" {
			g.scope.Bind(param.Name, slot)
		}
	}

	if err := g.genBlock(fn.Body); err != nil {
		return err
	}

	// A body with no reachable return still has to terminate its block.
	if !g.terminated {
		g.emit("  ret i32 0")
	}
	g.emit("}")
	return nil
}

// genBlock emits the statements of a block. Nested blocks share the
// function's flat scope.
func (g *Generator) genBlock(block *ast.Block) error {
	for _, stmt := range block.Stmts {
		if g.terminated {
			// Everything after the first return is unreachable.
			g.logger.Debug("dropping unreachable statement")
			return nil
		}
		if err := g.genStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) genStatement(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Block:
		return g.genBlock(s)

	case *ast.VarDeclStmt:
		return g.genVarDecl(s)

	case *ast.ReturnStmt:
		value, err := g.genExpression(s.Value)
		if err != nil {
			return err
		}
		g.emit(fmt.Sprintf("  ret i32 %s", value))
		g.terminated = true
		return nil

	case *ast.ExprStmt:
		// Evaluated for effect; the value is discarded.
		_, err := g.genExpression(s.Expr)
		return err

	case *ast.NoOpStmt:
		return nil

	default:
		return &CodegenError{
			Message: fmt.Sprintf("unsupported statement type %T", stmt),
			Span:    stmt.Span(),
		}
	}
}

// genVarDecl allocates a slot for the variable. An initializer is
// evaluated before the name is (re)bound, so `@x = x + 1;` reads the
// previous binding of x. A declaration without an initializer leaves the
// slot's contents unspecified.
func (g *Generator) genVarDecl(s *ast.VarDeclStmt) error {
	var value string
	if s.Value != nil {
		v, err := g.genExpression(s.Value)
		if err != nil {
			return err
		}
		value = v
	}

	slot := g.nextReg()
	g.emit(fmt.Sprintf("  %s = alloca i32", slot))
	if s.Value != nil {
		g.emit(fmt.Sprintf("  store i32 %s, i32* %s", value, slot))
	}

	if s.Name.Name != "_" {
		g.scope.Bind(s.Name.Name, slot)
	}
	return nil
}
