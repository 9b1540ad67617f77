package main

import (
	"github.com/spf13/cobra"
)

// mainify wraps a non-standard Cobra entry point (one returning an error)
// and produces a standard Cobra entry point, so that an entry point can
// return an error from deferred cleanup rather than calling os.Exit
// directly partway through.
func mainify(entry func(*cobra.Command, []string) error) func(*cobra.Command, []string) {
	return func(command *cobra.Command, arguments []string) {
		if err := entry(command, arguments); err != nil {
			fatal(err)
		}
	}
}
