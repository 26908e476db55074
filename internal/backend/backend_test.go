package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yot-lang/yotc/internal/diag"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"llvm", FormatIR},
		{"object-file", FormatObject},
		{"executable", FormatExecutable},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseFormat("wasm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestDefaultExtension(t *testing.T) {
	assert.Equal(t, ".ll", FormatIR.DefaultExtension())
	assert.Equal(t, ".o", FormatObject.DefaultExtension())
	assert.Equal(t, ".out", FormatExecutable.DefaultExtension())
}

func TestEmitIR(t *testing.T) {
	out := filepath.Join(t.TempDir(), "prog.ll")
	ir := "; ModuleID = 'prog'\ndefine i32 @main() {\nentry:\n  ret i32 0\n}\n"

	err := New().Emit(context.Background(), ir, FormatIR, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, ir, string(data))
}

func TestEmitMissingToolFails(t *testing.T) {
	b := New(WithClang("yotc-test-no-such-clang"))
	err := b.Emit(context.Background(), "", FormatObject, filepath.Join(t.TempDir(), "prog.o"))
	require.Error(t, err)

	var be *Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "yotc-test-no-such-clang", be.Tool)

	d := be.ToDiagnostic()
	assert.Equal(t, diag.StageBackend, d.Stage)
	assert.Equal(t, diag.CodeBackendFailed, d.Code)
}

func TestErrorFormatting(t *testing.T) {
	cause := errors.New("exit status 1")

	withOutput := &Error{Tool: "clang", Output: "error: expected type\n", Err: cause}
	assert.Equal(t, "clang: error: expected type", withOutput.Error())
	assert.ErrorIs(t, withOutput, cause)

	withoutOutput := &Error{Tool: "cc", Err: cause}
	assert.Equal(t, "cc: exit status 1", withoutOutput.Error())
}
