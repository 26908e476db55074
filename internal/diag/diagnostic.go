package diag

import "fmt"

// Stage identifies which compiler phase produced the diagnostic.
type Stage string

const (
	StageLexer   Stage = "lexer"
	StageParser  Stage = "parser"
	StageCodegen Stage = "codegen"
	StageBackend Stage = "backend"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityNote  Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors
	CodeLexIllegalRune Code = "LEX_ILLEGAL_RUNE"

	// Parser errors
	CodeParseUnexpectedToken Code = "PARSE_UNEXPECTED_TOKEN"
	CodeParseIntOutOfRange   Code = "PARSE_INT_OUT_OF_RANGE"
	CodeParseDuplicateParam  Code = "PARSE_DUPLICATE_PARAM"
	CodeExternWithBody       Code = "EXTERN_WITH_BODY"
	CodeMissingBody          Code = "MISSING_BODY"

	// Codegen errors
	CodeUnresolvedVariable  Code = "UNRESOLVED_VARIABLE"
	CodeUnresolvedFunction  Code = "UNRESOLVED_FUNCTION"
	CodeDuplicateFunction   Code = "DUPLICATE_FUNCTION"
	CodeArityMismatch       Code = "ARITY_MISMATCH"
	CodeInvalidAssignTarget Code = "CODEGEN_INVALID_ASSIGN_TARGET"

	// Backend errors
	CodeBackendFailed Code = "BACKEND_FAILED"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a compiler diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
	Help     string
}

// WithHelp returns a copy of the diagnostic with help text attached.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// Error makes Diagnostic usable as a Go error so pipeline stages can
// propagate it verbatim under the fail-fast contract.
func (d Diagnostic) Error() string {
	if d.Span.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Span, d.Stage, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Stage, d.Message)
}
