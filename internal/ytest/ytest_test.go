package ytest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYTest(t *testing.T) {
	Run(t, "testdata/ytest")
}

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFromYAMLFileRejectsUnknownField(t *testing.T) {
	path := writeFixture(t, "source: \"@main[] -> 0;\"\nbogus: true\n")
	_, err := FromYAMLFile(path)
	assert.Error(t, err)
}

func TestCheckRequiresSource(t *testing.T) {
	y := &YTest{Contains: []string{"define"}}
	assert.Error(t, y.check())
}

func TestCheckRequiresOneOutcome(t *testing.T) {
	y := &YTest{Source: "@main[] -> 0;"}
	assert.Error(t, y.check())

	y = &YTest{Source: "@main[] -> 0;", Call: "main", Error: "boom\n"}
	assert.Error(t, y.check())

	y = &YTest{Source: "@main[] -> 0;", Call: "main"}
	assert.NoError(t, y.check())
}

func TestRunReportsIRMismatch(t *testing.T) {
	y := &YTest{
		Source: "@main[] -> 0;",
		Output: "not the IR\n",
	}
	err := y.run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected and actual output differ")
}

func TestRunReportsMissingSubstring(t *testing.T) {
	y := &YTest{
		Source:   "@main[] -> 0;",
		Contains: []string{"define i64"},
	}
	err := y.run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not contain")
}

func TestRunReportsUnexpectedSuccess(t *testing.T) {
	y := &YTest{
		Source: "@main[] -> 0;",
		Error:  "unresolved variable `x`\n",
	}
	err := y.run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compilation succeeded")
}

func TestRunReportsWrongResult(t *testing.T) {
	y := &YTest{
		Source: "@main[] -> 1;",
		Call:   "main",
		Result: 2,
	}
	err := y.run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "main() returned 1, expected 2")
}

func TestLoadSkipsNonYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "case.yaml"), []byte("source: \"@main[] -> 0;\"\ncall: main\n"), 0o644))

	bundles, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, bundles, 1)
	assert.Equal(t, "case", bundles[0].TestName)
	require.NoError(t, bundles[0].Error)
	assert.Equal(t, "main", bundles[0].Test.Call)
}
