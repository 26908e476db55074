package diag

import (
	"fmt"
	"io"
	"strings"
)

// Formatter renders diagnostics with a source snippet and caret underline.
// The source text is supplied once per compilation; there is exactly one
// input file, so no per-file cache is needed.
type Formatter struct {
	w      io.Writer
	source string
}

// NewFormatter creates a formatter that writes to w, pointing into source.
func NewFormatter(w io.Writer, source string) *Formatter {
	return &Formatter{w: w, source: source}
}

// Format renders a single diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	fmt.Fprintf(f.w, "%s[%s]: %s\n", d.Severity, d.Code, d.Message)
	if !d.Span.IsValid() {
		f.printHelp(d)
		return
	}

	fmt.Fprintf(f.w, " --> %s\n", d.Span)

	line, ok := f.sourceLine(d.Span.Line)
	if ok {
		gutter := fmt.Sprintf("%d", d.Span.Line)
		pad := strings.Repeat(" ", len(gutter))
		fmt.Fprintf(f.w, "%s |\n", pad)
		fmt.Fprintf(f.w, "%s | %s\n", gutter, line)
		fmt.Fprintf(f.w, "%s | %s%s\n", pad, strings.Repeat(" ", d.Span.Column-1), carets(d.Span))
	}

	f.printHelp(d)
}

func (f *Formatter) printHelp(d Diagnostic) {
	if d.Help != "" {
		fmt.Fprintf(f.w, "help: %s\n", d.Help)
	}
}

// sourceLine returns the 1-based line from the source text.
func (f *Formatter) sourceLine(n int) (string, bool) {
	lines := strings.Split(f.source, "\n")
	if n < 1 || n > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[n-1], "\r"), true
}

// carets returns the underline for a span, at least one caret wide.
func carets(s Span) string {
	width := s.End - s.Start
	if width < 1 {
		width = 1
	}
	return strings.Repeat("^", width)
}
