package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTagsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags with their note counts",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			counts, err := svc.Tags(cmd.Context())
			if err != nil {
				return err
			}

			if ok, err := outputStructured(a.stdout, a.outputFormat(), counts); ok {
				return err
			}
			if len(counts) == 0 {
				fmt.Fprintln(a.stdout, "No tags in use.")
				return nil
			}
			for _, tc := range counts {
				fmt.Fprintf(a.stdout, "%s (%d)\n", tc.Tag, tc.Count)
			}
			return nil
		},
	}
}
