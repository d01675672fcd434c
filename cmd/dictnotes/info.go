package main

import (
	"fmt"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/dictnotes/internal/platform"
)

// infoView is what `info` reports.
type infoView struct {
	DataFile   string          `json:"data_file" yaml:"data_file"`
	Source     platform.Source `json:"source" yaml:"source"`
	Notes      int             `json:"notes" yaml:"notes"`
	Tags       int             `json:"tags" yaml:"tags"`
	Service    any             `json:"service,omitempty" yaml:"service,omitempty"`
	Repository any             `json:"repository,omitempty" yaml:"repository,omitempty"`
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show where notes are stored and the store state",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			notes, err := svc.ListNotes(cmd.Context())
			if err != nil {
				return err
			}
			tags, err := svc.Tags(cmd.Context())
			if err != nil {
				return err
			}

			view := infoView{
				DataFile: a.path,
				Source:   a.source,
				Notes:    len(notes),
				Tags:     len(tags),
			}
			if intro, ok := any(svc).(introspection.Introspectable); ok {
				view.Service = intro.State()
			}
			if intro, ok := svc.Repository().(introspection.Introspectable); ok {
				view.Repository = intro.State()
			}

			format := a.outputFormat()
			if format == formatText {
				fmt.Fprintf(a.stdout, "Data file: %s (%s)\n", view.DataFile, view.Source)
				fmt.Fprintf(a.stdout, "Notes:     %d\n", view.Notes)
				fmt.Fprintf(a.stdout, "Tags:      %d\n", view.Tags)
				if comp, ok := svc.Repository().(introspection.Component); ok {
					fmt.Fprintf(a.stdout, "Storage:   %s\n", comp.ComponentType())
				}
				return nil
			}
			_, err = outputStructured(a.stdout, format, view)
			return err
		},
	}
}
