package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/dictnotes"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dictnotes",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "dictnotes version %s\n", dictnotes.Version)
		},
	}
}
