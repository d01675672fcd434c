package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd(a *app) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:     "remove [ID]",
		Aliases: []string{"rm", "delete"},
		Short:   "Delete a note",
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

			if err := svc.DeleteNote(cmd.Context(), noteID); err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "Removed note %s\n", noteID)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Note ID")
	return cmd
}
