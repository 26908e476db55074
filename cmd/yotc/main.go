// Command yotc compiles yot source files to LLVM IR, object files, or
// native executables.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/yot-lang/yotc/internal/backend"
	"github.com/yot-lang/yotc/internal/driver"
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: yotc <file> [options]\n")
		fmt.Fprintf(os.Stderr, "\nCompile a yot source file.\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	output := flag.String("o", "", "output path (default: input stem plus format extension)")
	format := flag.String("f", "executable", "output format: llvm, object-file, or executable")
	optLevel := flag.Int("O", 2, "backend optimization level (0-3)")
	printTokens := flag.Bool("print-tokens", false, "dump the token stream before parsing")
	printAST := flag.Bool("print-ast", false, "dump the parsed tree")
	interpret := flag.String("interpret", "", "run the named nullary function in the interpreter instead of compiling")
	verbose := flag.Bool("v", false, "enable debug logging")

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return 1
	}
	path := flag.Arg(0)

	outFormat, err := backend.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if *optLevel < 0 || *optLevel > 3 {
		fmt.Fprintf(os.Stderr, "error: optimization level must be between 0 and 3, got %d\n", *optLevel)
		return 1
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	result, err := driver.Compile(context.Background(), driver.Options{
		Path:        path,
		Output:      *output,
		Format:      outFormat,
		OptLevel:    *optLevel,
		PrintTokens: *printTokens,
		PrintAST:    *printAST,
		Interpret:   *interpret,
		Logger:      logger,
	})
	if err != nil {
		source := ""
		if result != nil {
			source = result.Source
		}
		driver.FormatError(os.Stderr, source, err)
		return 1
	}
	return 0
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}
