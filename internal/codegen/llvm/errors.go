package llvm

import (
	"fmt"

	"github.com/yot-lang/yotc/internal/diag"
	"github.com/yot-lang/yotc/internal/lexer"
)

// NameKind says whether an unresolved name was used as a variable or a
// function.
type NameKind string

const (
	NameVariable NameKind = "variable"
	NameFunction NameKind = "function"
)

// UnresolvedNameError reports an identifier that did not resolve in the
// enclosing function's scope or in the function table.
type UnresolvedNameError struct {
	Name string
	Kind NameKind
	Span lexer.Span
}

func (e *UnresolvedNameError) Error() string {
	return fmt.Sprintf("unresolved %s `%s`", e.Kind, e.Name)
}

// ToDiagnostic converts the error into a shared diagnostic structure.
func (e *UnresolvedNameError) ToDiagnostic() diag.Diagnostic {
	code := diag.CodeUnresolvedVariable
	if e.Kind == NameFunction {
		code = diag.CodeUnresolvedFunction
	}
	return codegenDiagnostic(code, e.Error(), e.Span)
}

// ArityMismatchError reports a call whose argument count does not match
// the target's declared parameter count.
type ArityMismatchError struct {
	Name     string
	Expected int
	Actual   int
	Span     lexer.Span
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("function `%s` expects %d argument(s), got %d", e.Name, e.Expected, e.Actual)
}

// ToDiagnostic converts the error into a shared diagnostic structure.
func (e *ArityMismatchError) ToDiagnostic() diag.Diagnostic {
	return codegenDiagnostic(diag.CodeArityMismatch, e.Error(), e.Span)
}

// CodegenError is the catch-all for the remaining generation failures:
// duplicate function names and invalid assignment targets.
type CodegenError struct {
	Code    diag.Code
	Message string
	Span    lexer.Span
}

func (e *CodegenError) Error() string {
	return e.Message
}

// ToDiagnostic converts the error into a shared diagnostic structure.
func (e *CodegenError) ToDiagnostic() diag.Diagnostic {
	return codegenDiagnostic(e.Code, e.Message, e.Span)
}

func codegenDiagnostic(code diag.Code, msg string, span lexer.Span) diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageCodegen,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  msg,
		Span: diag.Span{
			Filename: span.Filename,
			Line:     span.Line,
			Column:   span.Column,
			Start:    span.Start,
			End:      span.End,
		},
	}
}
