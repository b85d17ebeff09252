// Package utils provides the CLI's logging and diagnostic output: a gated
// verbose trace logger plus colored success/warning/error helpers modeled on
// the cmd.Error/cmd.Warning/cmd.Fatal helpers of larger CLI tools in the
// ecosystem, with color disabled automatically when stdout/stderr are not
// terminals.
package utils

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var fmtPrintln = fmt.Println
var log = fmtPrintln

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) || !isatty.IsTerminal(os.Stderr.Fd()) {
		color.NoColor = true
	}
}

// Logger prints message to stdout when verbose is true.
func Logger(message string, verbose bool) {
	if !verbose {
		return
	}

	_, _ = log(message)
}

var (
	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

// Success prints a one-line success notice to stdout naming the artifact
// that was produced.
func Success(message string) {
	successColor.Fprintln(os.Stdout, message)
}

// Warning prints a warning message to stderr.
func Warning(message string) {
	warningColor.Fprintln(os.Stderr, "warning:", message)
}

// Error prints an error diagnostic to stderr, naming the failing operation
// and cause. No stack trace is printed.
func Error(err error) {
	errorColor.Fprintln(os.Stderr, "error:", err)
}

// Fatal prints an error diagnostic and terminates the process with exit
// code 1.
func Fatal(err error) {
	Error(err)
	os.Exit(1)
}
