package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"flux/internal/source"
)

// Diagnostic is anything that can describe itself as a located compiler
// error: parser.Error, hir.Error, types.Error and eval.Error all implement
// this.
type Diagnostic interface {
	error
	Code() Code
	Location() source.Location
}

// Report renders a Diagnostic against its source text as a Rust-style caret
// diagnostic, colored with fatih/color. Called from the CLI and REPL front
// ends only — the pure pipeline packages import this package for its Code
// values but never call Report.
func Report(src string, d Diagnostic) string {
	var b strings.Builder

	loc := d.Location()
	lines := strings.Split(src, "\n")

	header := color.New(color.FgRed, color.Bold)
	fmt.Fprintf(&b, "%s %s\n", header.Sprint("error:"), d.Error())
	fmt.Fprintf(&b, "  %s [%s%04d] at %s\n", color.HiBlackString("--"), Stage(d.Code()), d.Code(), loc)

	if loc.Start.Line >= 1 && loc.Start.Line <= len(lines) {
		line := lines[loc.Start.Line-1]
		gutterWidth := len(fmt.Sprintf("%d", loc.Start.Line))
		fmt.Fprintf(&b, "%*d | %s\n", gutterWidth, loc.Start.Line, line)

		width := loc.End.Column - loc.Start.Column
		if loc.End.Line != loc.Start.Line || width < 1 {
			width = 1
		}
		marker := strings.Repeat(" ", gutterWidth) + " | " +
			strings.Repeat(" ", max(0, loc.Start.Column-1)) +
			color.HiRedString(strings.Repeat("^", width))
		fmt.Fprintln(&b, marker)
	}

	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
