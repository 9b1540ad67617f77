package main

import (
	"github.com/spf13/cobra"
)

var rootCommand = &cobra.Command{
	Use:   "dirmirrord",
	Short: "dirmirrord watches a directory tree and invokes an action on change",
}

var rootConfiguration struct {
	// configPath is the path to the YAML configuration file.
	configPath string
	// envPath is the optional path to a .env file whose entries are added to
	// every spawned action's environment.
	envPath string
	// lockPath is the path to the single-instance lock file.
	lockPath string
	// statusPath is the path the `status` command reads from; it should
	// match the configuration's settings.statusfile.
	statusPath string
}

func init() {
	cobra.EnableCommandSorting = false
	cobra.MousetrapHelpText = ""

	flags := rootCommand.PersistentFlags()
	flags.StringVarP(&rootConfiguration.configPath, "config", "c", "/etc/dirmirror/config.yaml", "Path to the configuration file")
	flags.StringVar(&rootConfiguration.envPath, "env-file", "", "Path to an optional .env file")
	flags.StringVar(&rootConfiguration.lockPath, "lock-file", "/var/run/dirmirror/dirmirrord.lock", "Path to the single-instance lock file")
	flags.StringVar(&rootConfiguration.statusPath, "status-file", "/var/run/dirmirror/status", "Path to the status file read by the status command")

	rootCommand.AddCommand(
		runCommand,
		statusCommand,
		validateCommand,
		versionCommand,
		legalCommand,
	)
}
