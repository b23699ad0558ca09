// Package clierr renders parse and runtime errors to the terminal the way
// test/main.go reports pass/fail: color.RedString for failures,
// color.GreenString reserved for the success path callers print
// themselves.
package clierr

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Report prints a fatal error prefixed with the offending file, bold red
// like a diff-failure report, and returns the exit code the caller
// should use.
func Report(path string, err error) int {
	fmt.Fprintln(os.Stderr, color.New(color.FgRed, color.Bold).Sprintf("%s: %s", path, err))
	return 1
}

// Warn prints a non-fatal diagnostic (e.g. lexer errors collected while
// still attempting to parse) without affecting the exit code.
func Warn(msg string) {
	fmt.Fprintln(os.Stderr, color.YellowString("%s", msg))
}

// Success prints a message in green to standard output. No subcommand
// calls it at present.
func Success(msg string) {
	fmt.Fprintln(os.Stdout, color.GreenString("%s", msg))
}
