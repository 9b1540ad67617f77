package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dirmirror/dirmirror/pkg/dirmirror"
)

func versionMain(command *cobra.Command, arguments []string) error {
	fmt.Println(dirmirror.Version)
	return nil
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run:   mainify(versionMain),
}

func init() {
	versionCommand.Flags().SortFlags = false
}
