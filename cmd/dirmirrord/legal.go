package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dirmirror/dirmirror/pkg/dirmirror"
)

func legalMain(command *cobra.Command, arguments []string) error {
	fmt.Print(dirmirror.LegalNotice)
	return nil
}

var legalCommand = &cobra.Command{
	Use:   "legal",
	Short: "Show legal information",
	Run:   mainify(legalMain),
}
