package main

import (
	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:     "show [ID]",
		Aliases: []string{"get"},
		Short:   "Show a note",
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID, err := idFrom(args, id)
			if err != nil {
				return err
			}

			svc, err := a.service()
			if err != nil {
				return err
			}

			note, err := svc.GetNote(cmd.Context(), noteID)
			if err != nil {
				return err
			}
			return printNote(a.stdout, a.outputFormat(), note)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Note ID")
	return cmd
}
