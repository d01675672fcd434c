package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/dictnotes/pkg/core"
)

func newListCmd(a *app) *cobra.Command {
	var (
		filterTag string
		pattern   string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes",
		Long: `List prints notes in the order they were added.
Use --tag for an exact tag or --match for a glob over tags (e.g. "work/**").`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("tag") && flags.Changed("match") {
				return usageErrorf("--tag and --match cannot be combined")
			}
			if flags.Changed("tag") && strings.TrimSpace(filterTag) == "" {
				return usageErrorf("--tag cannot be blank")
			}
			if flags.Changed("match") && strings.TrimSpace(pattern) == "" {
				return usageErrorf("--match cannot be blank")
			}

			svc, err := a.service()
			if err != nil {
				return err
			}

			var notes []core.Note
			switch {
			case pattern != "":
				notes, err = svc.MatchTags(cmd.Context(), pattern)
			case filterTag != "":
				notes, err = svc.ListByTag(cmd.Context(), filterTag)
			default:
				notes, err = svc.ListNotes(cmd.Context())
			}
			if err != nil {
				return err
			}

			return printNotes(a.stdout, a.outputFormat(), notes)
		},
	}

	cmd.Flags().StringVarP(&filterTag, "tag", "t", "", "Only notes with this tag")
	cmd.Flags().StringVarP(&pattern, "match", "m", "", "Only notes with a tag matching this glob")
	return cmd
}
