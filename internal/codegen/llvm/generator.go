// Package llvm translates a yot AST into textual LLVM IR.
//
// Translation is two-pass by requirement, not convenience: the whole
// program's function signatures are recorded in the function table before
// any body is generated, so calls to functions declared later in the
// source resolve correctly.
package llvm

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yot-lang/yotc/internal/ast"
	"github.com/yot-lang/yotc/internal/diag"
	"github.com/yot-lang/yotc/internal/symbols"
)

// Generator generates LLVM IR from a yot program. A Generator performs
// one compilation and is not reused.
type Generator struct {
	// Output buffer for LLVM IR
	builder strings.Builder

	// Whole-module function table, complete before body generation
	funcs *symbols.Table

	// Variable scope of the function currently being generated
	scope *symbols.Scope

	// Temporary register counter, reset per function
	regCounter int

	// Set once the current block has emitted its terminator
	terminated bool

	moduleName string
	logger     *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithModuleName sets the name recorded in the module header.
func WithModuleName(name string) Option {
	return func(g *Generator) {
		g.moduleName = name
	}
}

// WithLogger attaches a logger for generation tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a new LLVM IR generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		moduleName: "yot_module",
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Table returns the function table populated by Generate. It is only
// meaningful after Generate has been called.
func (g *Generator) Table() *symbols.Table {
	return g.funcs
}

// Generate translates the program and returns the complete IR module
// text. The first error aborts generation.
func (g *Generator) Generate(prog *ast.Program) (string, error) {
	g.builder.Reset()
	g.funcs = symbols.NewTable()

	g.emit(fmt.Sprintf("; ModuleID = '%s'", g.moduleName))

	// Pass 1: record every signature before any body is translated.
	if err := g.declareSignatures(prog); err != nil {
		return "", err
	}

	// Pass 2: prototypes and bodies.
	for _, fn := range prog.Functions {
		g.emit("")
		if fn.Extern {
			g.emitExternDecl(fn)
			continue
		}
		if err := g.genFunction(fn); err != nil {
			return "", err
		}
	}

	return g.builder.String(), nil
}

// declareSignatures is the signature pass over the whole program.
func (g *Generator) declareSignatures(prog *ast.Program) error {
	for _, fn := range prog.Functions {
		kind := symbols.FuncDefined
		if fn.Extern {
			kind = symbols.FuncExtern
		}
		if _, err := g.funcs.Declare(fn.Name.Name, fn.Arity(), kind); err != nil {
			return &CodegenError{
				Code:    diag.CodeDuplicateFunction,
				Message: err.Error(),
				Span:    fn.Name.Span(),
			}
		}
		g.logger.Debug("declared function",
			zap.String("name", fn.Name.Name),
			zap.Int("arity", fn.Arity()),
			zap.Stringer("kind", kind))
	}
	return nil
}

// emit writes one line of IR.
func (g *Generator) emit(line string) {
	g.builder.WriteString(line)
	g.builder.WriteString("\n")
}

// nextReg returns a fresh temporary register name. Named temporaries are
// used instead of LLVM's %N scheme so emission order never has to respect
// the sequential-numbering rule.
func (g *Generator) nextReg() string {
	reg := fmt.Sprintf("%%t%d", g.regCounter)
	g.regCounter++
	return reg
}

// paramTypes renders the prototype's parameter list: n i32 slots.
func paramTypes(n int) string {
	types := make([]string, n)
	for i := range types {
		types[i] = "i32"
	}
	return strings.Join(types, ", ")
}
