package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// errArgs reports that a subcommand was invoked with arguments it doesn't
// accept.
func errArgs(command string) error {
	return fmt.Errorf("%s accepts no arguments", command)
}

// warning prints a warning message to standard error.
func warning(message string) {
	fmt.Fprintln(color.Error, color.YellowString("Warning:"), message)
}

// fatal prints an error message to standard error and terminates the
// process with an error exit code.
func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
