// Package driver wires the compilation pipeline together: read source,
// lex+parse, generate IR, hand the module to the backend. The pipeline
// is strictly sequential and fail-fast; the first error from any stage
// aborts the compilation with no partial output.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/yot-lang/yotc/internal/ast"
	"github.com/yot-lang/yotc/internal/backend"
	"github.com/yot-lang/yotc/internal/codegen/llvm"
	"github.com/yot-lang/yotc/internal/diag"
	"github.com/yot-lang/yotc/internal/interp"
	"github.com/yot-lang/yotc/internal/lexer"
	"github.com/yot-lang/yotc/internal/parser"
)

// Options configures one compilation.
type Options struct {
	// Path to the source file. Input is UTF-8; no extension is enforced.
	Path string

	// Output is the artifact path; empty derives <stem><ext> from the
	// input name and format.
	Output string

	Format   backend.Format
	OptLevel int

	// PrintTokens dumps the raw token stream to Stdout before parsing.
	PrintTokens bool
	// PrintAST dumps the parsed tree to Stdout.
	PrintAST bool

	// Interpret, when set, runs the named nullary function in the
	// reference interpreter and prints its result instead of invoking
	// the backend.
	Interpret string

	// Stdout receives --print-tokens/--print-ast/--interpret output;
	// defaults to os.Stdout.
	Stdout io.Writer

	Logger *zap.Logger
}

// Result carries the artifacts of a compilation attempt. Source is
// populated as soon as the input file has been read, so error formatting
// can point into it even when compilation fails.
type Result struct {
	Source     string
	IR         string
	OutputPath string
}

// DefaultOutputPath derives the artifact path from the input file's stem
// and the output format.
func DefaultOutputPath(inputPath string, format backend.Format) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return stem + format.DefaultExtension()
}

// Compile runs the whole pipeline for one source file.
func Compile(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	data, err := os.ReadFile(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", opts.Path, err)
	}
	source := string(data)
	result := &Result{Source: source}

	if opts.PrintTokens {
		printTokens(stdout, source, opts.Path)
	}

	prog, err := parser.New(source, parser.WithFilename(opts.Path)).ParseProgram()
	if err != nil {
		return result, err
	}
	logger.Debug("parsed program", zap.Int("functions", len(prog.Functions)))

	if opts.PrintAST {
		fmt.Fprintln(stdout, "*** AST ***")
		ast.Fprint(stdout, prog)
	}

	if !hasMain(prog) {
		logger.Warn("no main function found")
	}

	if opts.Interpret != "" {
		return result, runInterpreter(stdout, prog, opts.Interpret)
	}

	stem := strings.TrimSuffix(filepath.Base(opts.Path), filepath.Ext(opts.Path))
	gen := llvm.NewGenerator(llvm.WithModuleName(stem), llvm.WithLogger(logger))
	ir, err := gen.Generate(prog)
	if err != nil {
		return result, err
	}
	result.IR = ir

	outPath := opts.Output
	if outPath == "" {
		outPath = DefaultOutputPath(opts.Path, opts.Format)
	}
	result.OutputPath = outPath

	be := backend.New(backend.WithOptLevel(opts.OptLevel), backend.WithLogger(logger))
	if err := be.Emit(ctx, ir, opts.Format, outPath); err != nil {
		return result, err
	}

	logger.Debug("wrote artifact", zap.String("path", outPath))
	return result, nil
}

func runInterpreter(stdout io.Writer, prog *ast.Program, name string) error {
	machine, err := interp.New(prog)
	if err != nil {
		return err
	}
	value, err := machine.Call(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%d\n", value)
	return nil
}

func hasMain(prog *ast.Program) bool {
	for _, fn := range prog.Functions {
		if !fn.Extern && fn.Name.Name == "main" {
			return true
		}
	}
	return false
}

// printTokens re-lexes the source and dumps every token, including any
// ILLEGAL ones, one per line.
func printTokens(w io.Writer, source, filename string) {
	fmt.Fprintln(w, "*** TOKENS ***")
	lx := lexer.New(source)
	lx.SetFilename(filename)
	for {
		tok := lx.NextToken()
		fmt.Fprintf(w, "%-9s %q\n", tok.Type, tok.Literal)
		if tok.Type == lexer.EOF {
			return
		}
	}
}

// diagnoser is satisfied by every stage error that can render itself as
// a shared diagnostic.
type diagnoser interface {
	ToDiagnostic() diag.Diagnostic
}

// FormatError renders err to w. Stage errors that carry a diagnostic get
// the full caret-and-snippet treatment against source; anything else is
// printed as a plain error line.
func FormatError(w io.Writer, source string, err error) {
	var d diagnoser
	if errors.As(err, &d) {
		diag.NewFormatter(w, source).Format(d.ToDiagnostic())
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
