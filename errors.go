// errors.go

/*
TLCS-900/TMP94C241 Assembler — diagnostic reporting

(c) 2024 - 2026 Zayn Otley
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Diagnostics go to stderr as file:line: severity: message, coloured
// when stderr is a terminal.
var stderrIsTerminal = term.IsTerminal(int(os.Stderr.Fd()))

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

func (a *Assembler) diagnostic(severity, colour, format string, args ...interface{}) {
	file := a.currentFile
	if file == "" {
		file = "<input>"
	}
	msg := fmt.Sprintf(format, args...)
	if stderrIsTerminal {
		fmt.Fprintf(os.Stderr, "%s:%d: %s%s:%s %s\n", file, a.currentLine, colour, severity, ansiReset, msg)
	} else {
		fmt.Fprintf(os.Stderr, "%s:%d: %s: %s\n", file, a.currentLine, severity, msg)
	}
}

// errorf reports an error at the current source position and marks
// the assembly as failed.
func (a *Assembler) errorf(format string, args ...interface{}) {
	a.diagnostic("error", ansiRed, format, args...)
	a.errors = true
	a.errorCount++
}

// warnf reports a warning at the current source position.
func (a *Assembler) warnf(format string, args ...interface{}) {
	a.diagnostic("warning", ansiYellow, format, args...)
	a.warningCount++
}
