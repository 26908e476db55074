// Package backend materializes a generated IR module into an artifact:
// textual IR on disk, an object file compiled by clang, or an executable
// linked by the system C compiler. The compiler itself never touches
// machine code; both tools run as subprocesses.
package backend

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/yot-lang/yotc/internal/diag"
)

// Format selects the artifact kind to produce.
type Format int

const (
	FormatIR Format = iota
	FormatObject
	FormatExecutable
)

// ParseFormat maps a CLI format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "llvm":
		return FormatIR, nil
	case "object-file":
		return FormatObject, nil
	case "executable":
		return FormatExecutable, nil
	default:
		return 0, fmt.Errorf("unknown output format %q (want llvm, object-file or executable)", s)
	}
}

// DefaultExtension returns the extension used when no output path is
// given.
func (f Format) DefaultExtension() string {
	switch f {
	case FormatIR:
		return ".ll"
	case FormatObject:
		return ".o"
	default:
		return ".out"
	}
}

// Error wraps a toolchain failure as an opaque backend diagnostic.
type Error struct {
	Tool   string
	Output string
	Err    error
}

func (e *Error) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s: %s", e.Tool, strings.TrimSpace(e.Output))
	}
	return fmt.Sprintf("%s: %v", e.Tool, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ToDiagnostic converts the error into a shared diagnostic structure.
func (e *Error) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageBackend,
		Severity: diag.SeverityError,
		Code:     diag.CodeBackendFailed,
		Message:  e.Error(),
	}
}

// Backend drives the external toolchain for one compilation.
type Backend struct {
	clang    string
	linker   string
	optLevel int
	logger   *zap.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithClang overrides the compiler driver binary (default clang).
func WithClang(path string) Option {
	return func(b *Backend) { b.clang = path }
}

// WithLinker overrides the linker driver binary (default cc).
func WithLinker(path string) Option {
	return func(b *Backend) { b.linker = path }
}

// WithOptLevel sets the optimization level (0-3) forwarded to clang.
func WithOptLevel(level int) Option {
	return func(b *Backend) { b.optLevel = level }
}

// WithLogger attaches a logger for toolchain tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Backend) { b.logger = logger }
}

// New creates a backend with default tools: clang for IR-to-object, cc
// for linking, optimization level 2.
func New(opts ...Option) *Backend {
	b := &Backend{
		clang:    "clang",
		linker:   "cc",
		optLevel: 2,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Emit materializes the IR module at outPath in the requested format.
func (b *Backend) Emit(ctx context.Context, ir string, format Format, outPath string) error {
	switch format {
	case FormatIR:
		b.logger.Debug("writing IR", zap.String("path", outPath))
		if err := os.WriteFile(outPath, []byte(ir), 0o644); err != nil {
			return &Error{Tool: "write", Err: err}
		}
		return nil

	case FormatObject:
		return b.withIRFile(ir, func(irPath string) error {
			return b.compileObject(ctx, irPath, outPath)
		})

	case FormatExecutable:
		return b.withIRFile(ir, func(irPath string) error {
			objPath := irPath + ".o"
			if err := b.compileObject(ctx, irPath, objPath); err != nil {
				return err
			}
			return b.link(ctx, objPath, outPath)
		})

	default:
		return &Error{Tool: "backend", Err: fmt.Errorf("unknown format %d", format)}
	}
}

// withIRFile writes the IR to a scratch file, runs fn, and cleans up.
func (b *Backend) withIRFile(ir string, fn func(irPath string) error) error {
	dir, err := os.MkdirTemp("", "yotc-")
	if err != nil {
		return &Error{Tool: "backend", Err: err}
	}
	defer os.RemoveAll(dir)

	irPath := filepath.Join(dir, "module.ll")
	if err := os.WriteFile(irPath, []byte(ir), 0o644); err != nil {
		return &Error{Tool: "backend", Err: err}
	}
	return fn(irPath)
}

func (b *Backend) compileObject(ctx context.Context, irPath, outPath string) error {
	return b.run(ctx, b.clang, "-c", fmt.Sprintf("-O%d", b.optLevel), irPath, "-o", outPath)
}

func (b *Backend) link(ctx context.Context, objPath, outPath string) error {
	return b.run(ctx, b.linker, objPath, "-o", outPath)
}

func (b *Backend) run(ctx context.Context, tool string, args ...string) error {
	if _, err := exec.LookPath(tool); err != nil {
		return &Error{Tool: tool, Err: err}
	}

	b.logger.Debug("running tool", zap.String("tool", tool), zap.Strings("args", args))
	out, err := exec.CommandContext(ctx, tool, args...).CombinedOutput()
	if err != nil {
		return &Error{Tool: tool, Output: string(out), Err: err}
	}
	return nil
}
