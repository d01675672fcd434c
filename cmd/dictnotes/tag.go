package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/dictnotes/pkg/core"
)

func newTagCmd(a *app) *cobra.Command {
	var (
		id     string
		remove bool
	)

	cmd := &cobra.Command{
		Use:   "tag [ID] TAG...",
		Short: "Add or remove tags on a note",
		Example: `  dictnotes tag 1 errand today
  dictnotes tag --id 1 --remove today`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID := id
			tags := args
			if noteID == "" {
				if len(args) < 2 {
					return usageErrorf("tag needs a note ID and at least one tag")
				}
				noteID, tags = args[0], args[1:]
			}

			svc, err := a.service()
			if err != nil {
				return err
			}

			var note core.Note
			if remove {
				note, err = svc.UntagNote(cmd.Context(), noteID, tags...)
			} else {
				note, err = svc.TagNote(cmd.Context(), noteID, tags...)
			}
			if err != nil {
				return err
			}

			format := a.outputFormat()
			if format != formatText {
				return printNote(a.stdout, format, note)
			}
			if len(note.Tags) == 0 {
				fmt.Fprintf(a.stdout, "Note %s has no tags\n", note.ID)
				return nil
			}
			fmt.Fprintf(a.stdout, "Note %s tags: %s\n", note.ID, strings.Join(note.Tags, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Note ID")
	cmd.Flags().BoolVarP(&remove, "remove", "r", false, "Remove the tags instead of adding them")
	return cmd
}
