package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func statusMain(command *cobra.Command, arguments []string) error {
	if len(arguments) != 0 {
		return errArgs("status")
	}

	file, err := os.Open(rootConfiguration.statusPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no status file at %s (is dirmirrord running with settings.statusfile set?)", rootConfiguration.statusPath)
		}
		return fmt.Errorf("unable to open status file: %w", err)
	}
	defer file.Close()

	_, err = io.Copy(os.Stdout, file)
	return err
}

var statusCommand = &cobra.Command{
	Use:   "status",
	Short: "Print the most recently written status report",
	Run:   mainify(statusMain),
}
