package report

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	WarnColorFG    = pterm.FgYellow
	ErrorColorFG   = pterm.FgRed
	InfoColorFG    = pterm.FgLightCyan

	ErrorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	WarnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
)

// LogLevel gates how much of a Bag's contents Print renders.
type LogLevel int

const (
	LogLevelSilent LogLevel = iota
	LogLevelError
	LogLevelWarning
	LogLevelVerbose
)

// Print renders every diagnostic in the bag to stdout, gated by level.
func Print(b *Bag, level LogLevel) {
	if level == LogLevelSilent {
		return
	}

	for _, d := range b.Diagnostics {
		if d.Severity == SeverityError {
			printDiagnostic(d)
		} else if level >= LogLevelWarning {
			printDiagnostic(d)
		}
	}
}

func printDiagnostic(d *Diagnostic) {
	fmt.Print("\n-- ")
	if d.Severity == SeverityError {
		ErrorStyleBG.Print(d.Stage.String() + " Error")
	} else {
		WarnStyleBG.Print(d.Stage.String() + " Warning")
	}
	fmt.Println()
	fmt.Println(d.Message)

	if d.Span != nil {
		InfoColorFG.Printf("  at %s\n", d.Span.String())
	}
}

// PrintSourceSelection prints the source lines spanned by sp (read from
// path) with a caret (^) row under the offending columns.
func PrintSourceSelection(path string, sp *Span) {
	if sp == nil {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	lines := make([]string, sp.EndLine-sp.StartLine+1)
	sc := bufio.NewScanner(f)
	for lineNo := 1; sc.Scan(); lineNo++ {
		if lineNo >= sp.StartLine && lineNo <= sp.EndLine {
			lines[lineNo-sp.StartLine] = sc.Text()
		}
	}

	maxWidth := len(strconv.Itoa(sp.EndLine)) + 1
	fmtStr := "%-" + strconv.Itoa(maxWidth) + "v"

	for i, line := range lines {
		InfoColorFG.Print(fmt.Sprintf(fmtStr, i+sp.StartLine))
		fmt.Print("|  ")
		fmt.Println(line)

		fmt.Print(strings.Repeat(" ", maxWidth), "|  ")
		switch {
		case i == 0 && i == len(lines)-1:
			fmt.Print(strings.Repeat(" ", sp.StartCol-1))
			ErrorColorFG.Println(strings.Repeat("^", max(sp.EndCol-sp.StartCol, 1)))
		case i == 0:
			fmt.Print(strings.Repeat(" ", sp.StartCol-1))
			ErrorColorFG.Println(strings.Repeat("^", max(len(line)-sp.StartCol+1, 1)))
		case i == len(lines)-1:
			ErrorColorFG.Println(strings.Repeat("^", max(sp.EndCol-1, 1)))
		default:
			ErrorColorFG.Println(strings.Repeat("^", max(len(line), 1)))
		}
	}

	fmt.Println()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
