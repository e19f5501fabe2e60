package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	godeko "github.com/reoring/godeko"
)

var (
	errLabel  = color.New(color.FgRed, color.Bold).Sprint("error")
	warnLabel = color.New(color.FgYellow, color.Bold).Sprint("warning")
	codeStyle = color.New(color.Faint).Sprintf
)

// render prints one line-located entry per diagnostic, with the offending
// source line and a caret underline.
func render(w io.Writer, path, source string, diags godeko.Diagnostics) {
	for _, d := range diags {
		if d.Severity == godeko.Ignore {
			continue
		}
		label := errLabel
		if d.Severity == godeko.Warn {
			label = warnLabel
		}
		line, col := position(source, d.Range.Start)
		fmt.Fprintf(w, "%s:%d:%d %s%s %s\n", path, line, col, label, codeStyle("[%s]", d.Code), d.Message)
		if len(d.AllowedKeys) > 0 {
			fmt.Fprintf(w, "  known keys: %s\n", strings.Join(d.AllowedKeys, ", "))
		}
		printSnippet(w, source, d.Range)
	}
}

// position converts a byte offset into 1-based line and column numbers.
func position(source string, offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(source) {
		offset = len(source)
	}
	line, col = 1, 1
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func printSnippet(w io.Writer, source string, rng godeko.Range) {
	start := rng.Start
	if start < 0 || start > len(source) {
		return
	}
	lineStart := strings.LastIndexByte(source[:start], '\n') + 1
	lineEnd := strings.IndexByte(source[lineStart:], '\n')
	if lineEnd < 0 {
		lineEnd = len(source)
	} else {
		lineEnd += lineStart
	}
	if lineStart >= lineEnd {
		return
	}
	text := source[lineStart:lineEnd]
	fmt.Fprintf(w, "    %s\n", text)

	underlineEnd := rng.End
	if underlineEnd > lineEnd {
		underlineEnd = lineEnd
	}
	width := underlineEnd - start
	if width < 1 {
		width = 1
	}
	pad := strings.Repeat(" ", start-lineStart)
	fmt.Fprintf(w, "    %s%s\n", pad, strings.Repeat("^", width))
}
