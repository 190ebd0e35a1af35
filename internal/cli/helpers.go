package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Streams used for user-facing messages; tests swap them out
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
	Stdin  io.Reader = os.Stdin
)

// Confirm prompts the user for confirmation
func Confirm(prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}

	fmt.Fprint(Stdout, prompt+suffix)

	reader := bufio.NewReader(Stdin)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))

	if response == "" {
		return defaultYes, nil
	}

	return response == "y" || response == "yes", nil
}

// PrintSuccess prints a success message unless quiet mode is enabled
func PrintSuccess(format string, args ...interface{}) {
	printStatus(Stdout, "✓", "OK", format, args...)
}

// PrintInfo prints an info message unless quiet mode is enabled
func PrintInfo(format string, args ...interface{}) {
	printStatus(Stdout, "ℹ", "INFO", format, args...)
}

// PrintWarning prints a warning message to stderr
func PrintWarning(format string, args ...interface{}) {
	printStatus(Stderr, "⚠", "WARNING", format, args...)
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if !noColor {
		fmt.Fprintf(Stderr, "✗ %s\n", msg)
	} else {
		fmt.Fprintf(Stderr, "ERROR: %s\n", msg)
	}
}

func printStatus(w io.Writer, icon, label, format string, args ...interface{}) {
	// warnings still show in quiet mode
	if quiet && w == Stdout {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if !noColor {
		fmt.Fprintf(w, "%s %s\n", icon, msg)
	} else {
		fmt.Fprintf(w, "%s: %s\n", label, msg)
	}
}

// Global flags (will be set from cmd package)
var (
	quiet       bool
	noColor     bool
	skipConfirm bool
)

// SetGlobalFlags sets the global flag values from the cmd package
func SetGlobalFlags(q, nc, sc bool) {
	quiet = q
	noColor = nc
	skipConfirm = sc
}
