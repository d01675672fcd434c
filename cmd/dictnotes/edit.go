package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/dictnotes/pkg/core"
)

func newEditCmd(a *app) *cobra.Command {
	var (
		id          string
		title       string
		description string
		tags        []string
		addTags     []string
		removeTags  []string
	)

	cmd := &cobra.Command{
		Use:   "edit [ID]",
		Short: "Change fields of a note",
		Long: `Edit merges the given fields into an existing note. Fields that are not
passed stay as they are. --tag replaces the whole tag set (pass --tag "" to clear it).`,
		Example: `  dictnotes edit 1 --title "Buy oat milk"
  dictnotes edit --id 2 --description "" --add-tag urgent`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID, err := idFrom(args, id)
			if err != nil {
				return err
			}

			var patch core.NotePatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("tag") {
				patch.Tags = &tags
			}
			patch.AddTags = addTags
			patch.RemoveTags = removeTags
			if patch.IsEmpty() {
				return usageErrorf("nothing to change: pass --title, --description, --tag, --add-tag or --remove-tag")
			}

			svc, err := a.service()
			if err != nil {
				return err
			}

			note, err := svc.UpdateNote(cmd.Context(), noteID, patch)
			if err != nil {
				return err
			}

			format := a.outputFormat()
			if format != formatText {
				return printNote(a.stdout, format, note)
			}
			fmt.Fprintf(a.stdout, "Updated note %s\n", note.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Note ID")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Replace the tag set")
	cmd.Flags().StringSliceVar(&addTags, "add-tag", nil, "Tag to add")
	cmd.Flags().StringSliceVar(&removeTags, "remove-tag", nil, "Tag to remove")
	return cmd
}
