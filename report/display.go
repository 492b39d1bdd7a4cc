package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var (
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorColorFG = pterm.FgRed
	warnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	warnColorFG  = pterm.FgYellow
)

// Display renders every diagnostic in the bag to the terminal, using the
// source map to show the offending source text with caret underlining.
func Display(bag *Bag, sm *SourceMap) {
	for _, d := range bag.Diagnostics() {
		displayDiagnostic(d, sm)
	}
}

// displayDiagnostic displays a single compilation error or warning.
func displayDiagnostic(d *Diagnostic, sm *SourceMap) {
	if d.IsWarning {
		warnStyleBG.Print("warning")
		warnColorFG.Print(" [" + d.Code + "] ")
	} else {
		errorStyleBG.Print("error")
		errorColorFG.Print(" [" + d.Code + "] ")
	}

	if d.Span == nil {
		fmt.Printf("%s: %s\n\n", d.Path, d.Message)
		return
	}

	fmt.Printf("%s:%d:%d: %s\n\n", d.Path, d.Span.StartLine+1, d.Span.StartCol+1, d.Message)
	displaySourceText(sm, d.Path, d.Span)
}

// displaySourceText displays a segment of source text defined by a text span.
func displaySourceText(sm *SourceMap, path string, span *TextSpan) {
	lines := sm.Lines(path, span.StartLine, span.EndLine)
	if lines == nil {
		return
	}

	for i, line := range lines {
		lines[i] = strings.ReplaceAll(line, "\t", "    ")
	}

	// Calculate the minimum line indentation.
	minIndent := math.MaxInt
	for _, line := range lines {
		lineIndent := 0
		for _, c := range line {
			if c == ' ' {
				lineIndent++
			} else {
				break
			}
		}

		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	// Calculate the maximum line number length and the format string for line
	// numbers derived from it.
	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		fmt.Printf(lineNumFmtStr, i+span.StartLine+1)
		fmt.Println(line[minIndent:])
		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		// The number of spaces before caret underlining begins.  Zero for
		// every line but the first since underlining continues from the
		// previous line.
		var caretPrefixCount int
		if i == 0 {
			caretPrefixCount = span.StartCol - minIndent
		}

		// The number of trailing characters left unhighlighted.  Zero for
		// every line but the last since underlining spans onto the next line.
		var caretSuffixCount int
		if i == len(lines)-1 {
			caretSuffixCount = len(line) - span.EndCol
		}

		fmt.Print(strings.Repeat(" ", caretPrefixCount))
		fmt.Println(strings.Repeat("^", max(len(line)-caretSuffixCount-caretPrefixCount-minIndent, 1)))
	}

	fmt.Println()
}
