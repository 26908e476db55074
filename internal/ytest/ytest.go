// Package ytest runs formulaic compiler tests ("ytests") defined in YAML
// files. Each file holds one test: a yot source program plus the expected
// outcome, which is one of the generated LLVM IR (exact or substring
// match), an interpreted result, or a compilation error.
//
// A ytest that checks generated IR looks like
//
//	source: |
//	  @main[] -> 1 + 2;
//
//	contains:
//	  - "define i32 @main()"
//	  - "add i32 1, 2"
//
// Exact IR comparison uses the output field instead of contains. A test
// that runs the reference interpreter names a nullary function and its
// expected value:
//
//	source: |
//	  @main[] -> 6 * 7;
//
//	call: main
//	result: 42
//
// A test expecting compilation to fail sets the error field to the exact
// error string:
//
//	source: |
//	  @main[] -> x;
//
//	error: |
//	  unresolved variable `x`
//
// Ytest YAML files for a package reside in a subdirectory named
// testdata/ytest, and the package's test file calls Run:
//
//	func TestYTest(t *testing.T) { ytest.Run(t, "testdata/ytest") }
//
// Each ytest runs as a subtest named for the file that defines it, so
// name the files descriptively. A test can be skipped by setting the
// skip field to a non-empty string.
package ytest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"

	"github.com/yot-lang/yotc/internal/codegen/llvm"
	"github.com/yot-lang/yotc/internal/interp"
	"github.com/yot-lang/yotc/internal/parser"
)

// Bundle pairs a loaded test with its provenance so Run can report
// malformed files as failing subtests instead of aborting the walk.
type Bundle struct {
	TestName string
	FileName string
	Test     *YTest
	Error    error
}

// Load reads every .yaml file in dirname into a Bundle.
func Load(dirname string) ([]Bundle, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}
	var bundles []Bundle
	for _, entry := range entries {
		filename := entry.Name()
		const dotyaml = ".yaml"
		if !strings.HasSuffix(filename, dotyaml) {
			continue
		}
		testname := strings.TrimSuffix(filename, dotyaml)
		filename = filepath.Join(dirname, filename)
		yt, err := FromYAMLFile(filename)
		bundles = append(bundles, Bundle{testname, filename, yt, err})
	}
	return bundles, nil
}

// Run runs the ytests in the directory named dirname, each as a subtest
// named for its file.
func Run(t *testing.T, dirname string) {
	bundles, err := Load(dirname)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range bundles {
		b := b
		t.Run(b.TestName, func(t *testing.T) {
			t.Parallel()
			if b.Error != nil {
				t.Fatalf("%s: %s", b.FileName, b.Error)
			}
			b.Test.Run(t, b.FileName)
		})
	}
}

// YTest defines one ytest.
type YTest struct {
	Skip string `yaml:"skip,omitempty"`

	Source string `yaml:"source"`

	// Exactly one outcome: IR comparison, interpretation, or an error.
	Output   string   `yaml:"output,omitempty"`
	Contains []string `yaml:"contains,omitempty"`
	Call     string   `yaml:"call,omitempty"`
	Result   int32    `yaml:"result,omitempty"`
	Error    string   `yaml:"error,omitempty"`
}

func (y *YTest) check() error {
	if y.Source == "" {
		return errors.New("source field must be present")
	}
	cnt := 0
	if y.Output != "" || len(y.Contains) > 0 {
		cnt++
	}
	if y.Call != "" {
		cnt++
	}
	if y.Error != "" {
		cnt++
	}
	if cnt != 1 {
		return errors.New("exactly one of output/contains, call, or error must be present")
	}
	return nil
}

// FromYAMLFile loads a YTest from the YAML file named filename. Unknown
// fields are rejected so typos in fixtures fail loudly.
func FromYAMLFile(filename string) (*YTest, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var y YTest
	if err := dec.Decode(&y); err != nil {
		return nil, err
	}
	return &y, nil
}

// Run executes the test against the in-process pipeline.
func (y *YTest) Run(t *testing.T, filename string) {
	if y.Skip != "" {
		t.Skip("skipping test:", y.Skip)
	}
	if err := y.check(); err != nil {
		t.Fatalf("%s: bad yaml format: %s", filename, err)
	}
	if err := y.run(); err != nil {
		t.Fatalf("%s: %s", filename, err)
	}
}

func (y *YTest) run() error {
	prog, perr := parser.New(y.Source, parser.WithFilename("ytest.yot")).ParseProgram()

	if y.Call != "" {
		if perr != nil {
			return perr
		}
		machine, err := interp.New(prog)
		if err != nil {
			return err
		}
		got, err := machine.Call(y.Call)
		if err != nil {
			return err
		}
		if got != y.Result {
			return fmt.Errorf("%s() returned %d, expected %d", y.Call, got, y.Result)
		}
		return nil
	}

	var ir string
	err := perr
	if err == nil {
		ir, err = llvm.NewGenerator(llvm.WithModuleName("ytest")).Generate(prog)
	}

	if y.Error != "" {
		if err == nil {
			return fmt.Errorf("expected error %q, compilation succeeded", strings.TrimSuffix(y.Error, "\n"))
		}
		errStr := strings.TrimSuffix(err.Error(), "\n") + "\n"
		if y.Error != errStr {
			return diffErr("error", y.Error, errStr)
		}
		return nil
	}

	if err != nil {
		return err
	}
	if y.Output != "" && y.Output != ir {
		return diffErr("output", y.Output, ir)
	}
	for _, want := range y.Contains {
		if !strings.Contains(ir, want) {
			return fmt.Errorf("generated IR does not contain %q:\n%s", want, ir)
		}
	}
	return nil
}

func diffErr(name, expected, actual string) error {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		FromFile: "expected",
		B:        difflib.SplitLines(actual),
		ToFile:   "actual",
		Context:  5,
	})
	if err != nil {
		panic("ytest: " + err.Error())
	}
	return fmt.Errorf("expected and actual %s differ:\n%s", name, diff)
}
