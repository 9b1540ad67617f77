package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dirmirror/dirmirror/pkg/configuration"
	"github.com/dirmirror/dirmirror/pkg/logging"
	"github.com/dirmirror/dirmirror/pkg/process"
)

func validateMain(command *cobra.Command, arguments []string) error {
	if len(arguments) != 0 {
		return errArgs("validate")
	}

	registry, _, err := configuration.Load(rootConfiguration.configPath, rootConfiguration.envPath, logging.New(logging.LevelError), make(chan process.Completion, 1))
	if err != nil {
		return err
	}

	fmt.Printf("Configuration is valid: %d origin(s) configured.\n", registry.Len())
	return nil
}

var validateCommand = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file without starting the daemon",
	Run:   mainify(validateMain),
}
