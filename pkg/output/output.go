// Package output provides styled terminal output for the Plume CLI.
//
// Status and progress messages go to stderr so stdout stays reserved for
// the serialized context document. Functions use lipgloss for styling but
// abstract away the details from callers.
package output

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	verboseMode bool
)

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	verboseMode = v
}

// Success prints a success message in green.
//
// Example:
//
//	output.Success("Context document written: plume-context.json")
func Success(msg string) {
	fmt.Fprintln(os.Stderr, successStyle.Render("✓ "+msg))
}

// Error prints an error message in red.
//
// Example:
//
//	output.Error("Not a directory: ./missing")
func Error(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+msg))
}

// Info prints an informational message in cyan.
func Info(msg string) {
	fmt.Fprintln(os.Stderr, infoStyle.Render("• "+msg))
}

// Step prints an indented step message in gray.
//
// Example:
//
//	output.Step("plume context . --deps --code")
func Step(msg string) {
	fmt.Fprintln(os.Stderr, stepStyle.Render("   "+msg))
}

// Verbose prints a debug message only if verbose mode is enabled.
func Verbose(msg string) {
	if verboseMode {
		fmt.Fprintln(os.Stderr, stepStyle.Render("» "+msg))
	}
}
