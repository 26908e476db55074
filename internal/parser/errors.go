package parser

import (
	"fmt"

	"github.com/yot-lang/yotc/internal/diag"
	"github.com/yot-lang/yotc/internal/lexer"
)

// ParseError captures a grammar mismatch with location context.
type ParseError struct {
	Code     diag.Code
	Message  string
	Expected string      // token class or construct that was required
	Actual   lexer.Token // token that was found instead
	Span     lexer.Span
	Help     string
}

func (e *ParseError) Error() string {
	if e.Span.IsValid() {
		return fmt.Sprintf("%s: %s", e.Span, e.Message)
	}
	return e.Message
}

// ToDiagnostic converts the parse error into a shared diagnostic structure.
func (e *ParseError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     e.Code,
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
		Help: e.Help,
	}
}

// failed reports whether a fatal error has already been recorded. The
// grammar has no recovery points, so the first error aborts the parse.
func (p *Parser) failed() bool {
	return len(p.errors) > 0
}

func (p *Parser) record(err error) {
	p.errors = append(p.errors, err)
}

// reportExpected records an error for a missing token or construct.
func (p *Parser) reportExpected(expected string, found lexer.Token) {
	lit := found.Literal
	if lit == "" {
		lit = string(found.Type)
	}
	p.record(&ParseError{
		Code:     diag.CodeParseUnexpectedToken,
		Message:  fmt.Sprintf("expected %s, found `%s`", expected, lit),
		Expected: expected,
		Actual:   found,
		Span:     found.Span,
	})
}

func (p *Parser) reportError(code diag.Code, span lexer.Span, format string, args ...any) {
	p.record(&ParseError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	})
}
