package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		tags        []string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add TITLE...",
		Short: "Add a note",
		Long:  `Add creates a note. Every remaining argument is joined into the title.`,
		Example: `  dictnotes add Buy milk --tag errand
  dictnotes add "Call Bob" -t work -t phone -d "about the invoice"`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return usageErrorf("title cannot be empty")
			}

			svc, err := a.service()
			if err != nil {
				return err
			}

			note, err := svc.AddNote(cmd.Context(), title, tags, description)
			if err != nil {
				return err
			}

			format := a.outputFormat()
			if format != formatText {
				return printNote(a.stdout, format, note)
			}
			fmt.Fprintf(a.stdout, "Added note %s\n", note.ID)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag to attach (repeatable or comma separated)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Free-text description")
	return cmd
}
