// Package cli holds the user-facing output helpers of the randgen command.
// Colors degrade to plain text when stdout is not a terminal.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	errColor     = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

// Fatal prints a message to stderr and exits with code 1.
func Fatal(msg string) {
	errColor.Fprintln(os.Stderr, "error:", msg)
	os.Exit(1)
}

// FatalErr prints an error message with details to stderr and exits with code 1.
func FatalErr(msg string, err error) {
	errColor.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

// Info prints an informational message to stdout.
func Info(msg string) {
	fmt.Println(msg)
}

// Infof prints a formatted informational message to stdout.
func Infof(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// Success prints a success message to stdout.
func Success(msg string) {
	successColor.Println("✓", msg)
}

// Successf prints a formatted success message to stdout.
func Successf(format string, args ...any) {
	successColor.Printf("✓ "+format+"\n", args...)
}

// Warn prints a warning message to stderr.
func Warn(msg string) {
	warnColor.Fprintln(os.Stderr, "warning:", msg)
}

// Warnf prints a formatted warning message to stderr.
func Warnf(format string, args ...any) {
	warnColor.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}
