package report

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var (
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	warnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	infoColorFG  = pterm.FgLightGreen
)

// displayCompileMessage displays a compile error or warning banner, followed
// by the offending source excerpt if a position is available.
func displayCompileMessage(label, reprPath string, pos *TextPosition, message string) {
	if label == "error" {
		errorStyleBG.Print(" error ")
	} else {
		warnStyleBG.Print(" warning ")
	}

	if pos == nil {
		fmt.Printf(" %s: %s\n\n", reprPath, message)
		return
	}

	fmt.Printf(" %s:%d:%d\n", reprPath, pos.StartLine+1, pos.StartCol+1)
	fmt.Println(message)
	displaySourceExcerpt(reprPath, pos)
}

// displayStdError displays a plain Go error attributed to a file.
func displayStdError(reprPath string, err error) {
	errorStyleBG.Print(" error ")
	fmt.Printf(" %s: %s\n\n", reprPath, err)
}

// displayModuleMessage displays a module-loading error or warning.
func displayModuleMessage(label, modName, message string) {
	if label == "error" {
		errorStyleBG.Print(" module error ")
	} else {
		warnStyleBG.Print(" module warning ")
	}
	fmt.Printf(" %s: %s\n\n", modName, message)
}

// displayFatal displays a fatal, unrecoverable error.
func displayFatal(message string) {
	errorStyleBG.Print(" fatal ")
	fmt.Printf(" %s\n\n", message)
}

// displayICE displays an internal checker error: a condition the checker
// asserts can never occur, such as an unknown AST node kind reaching a pass
// that only knows how to handle the closed set the parser promises.
func displayICE(message string) {
	errorStyleBG.Print(" internal error ")
	fmt.Printf(" %s\n", message)
	infoColorFG.Println("this indicates a bug in the checker itself, not in the checked program")
}

// displaySourceExcerpt prints the source lines spanned by pos, underlined
// with carets, trimmed to their common indentation.
func displaySourceExcerpt(absPath string, pos *TextPosition) {
	file, err := os.Open(absPath)
	if err != nil {
		return
	}
	defer file.Close()

	var lines []string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if pos.StartLine <= ln && ln <= pos.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if len(lines) == 0 {
		fmt.Println()
		return
	}

	minIndent := math.MaxInt
	for _, line := range lines {
		indent := 0
		for _, c := range line {
			if c != ' ' {
				break
			}
			indent++
		}
		if indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent == math.MaxInt {
		minIndent = 0
	}

	maxLineNumLen := len(strconv.Itoa(pos.EndLine + 1))
	lineNumFmt := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		fmt.Printf(lineNumFmt, i+pos.StartLine+1)
		if minIndent <= len(line) {
			fmt.Println(line[minIndent:])
		} else {
			fmt.Println(line)
		}

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		var prefix int
		if i == 0 {
			prefix = pos.StartCol - minIndent
		}
		if prefix < 0 {
			prefix = 0
		}

		var suffix int
		if i == len(lines)-1 {
			suffix = len(line) - pos.EndCol
		}
		if suffix < 0 {
			suffix = 0
		}

		carets := len(line) - suffix - prefix - minIndent
		if carets < 1 {
			carets = 1
		}

		fmt.Print(strings.Repeat(" ", prefix))
		fmt.Println(strings.Repeat("^", carets))
	}

	fmt.Println()
}
