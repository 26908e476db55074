package diag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpanString(t *testing.T) {
	s := Span{Filename: "prog.yot", Line: 3, Column: 7}
	assert.Equal(t, "prog.yot:3:7", s.String())

	s.Filename = ""
	assert.Equal(t, "3:7", s.String())
}

func TestDiagnosticError(t *testing.T) {
	d := Diagnostic{
		Stage:    StageParser,
		Severity: SeverityError,
		Code:     CodeParseUnexpectedToken,
		Message:  "expected `;`, found `}`",
		Span:     Span{Filename: "prog.yot", Line: 2, Column: 5},
	}
	assert.Equal(t, "prog.yot:2:5: parser: expected `;`, found `}`", d.Error())

	d.Span = Span{}
	assert.Equal(t, "parser: expected `;`, found `}`", d.Error())
}

func TestFormatterSnippet(t *testing.T) {
	source := "@main[]{\n    -> 1 $ 2;\n}\n"
	var out strings.Builder
	f := NewFormatter(&out, source)

	f.Format(Diagnostic{
		Stage:    StageLexer,
		Severity: SeverityError,
		Code:     CodeLexIllegalRune,
		Message:  "illegal character \"$\"",
		Span:     Span{Filename: "prog.yot", Line: 2, Column: 10, Start: 18, End: 19},
	})

	got := out.String()
	require.Contains(t, got, "error[LEX_ILLEGAL_RUNE]: illegal character \"$\"")
	require.Contains(t, got, " --> prog.yot:2:10")
	require.Contains(t, got, "2 |     -> 1 $ 2;")
	require.Contains(t, got, "  |          ^")
}

func TestFormatterWithoutSpan(t *testing.T) {
	var out strings.Builder
	f := NewFormatter(&out, "")

	f.Format(Diagnostic{
		Stage:    StageBackend,
		Severity: SeverityError,
		Code:     CodeBackendFailed,
		Message:  "clang: command not found",
		Help:     "install clang or use -f llvm",
	})

	got := out.String()
	require.Contains(t, got, "error[BACKEND_FAILED]: clang: command not found")
	require.Contains(t, got, "help: install clang or use -f llvm")
	assert.NotContains(t, got, "-->")
}
