package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	lifecycleadapter "github.com/aretw0/dictnotes/pkg/adapters/lifecycle"
	"github.com/aretw0/dictnotes/pkg/core"
)

// eventView is the machine-readable shape of a watch event.
type eventView struct {
	Type  core.EventType `json:"type" yaml:"type"`
	ID    string         `json:"id" yaml:"id"`
	Title string         `json:"title,omitempty" yaml:"title,omitempty"`
	At    time.Time      `json:"at" yaml:"at"`
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print note changes made by other invocations",
		Long:  `Watch follows the data file and prints one line per created, modified or deleted note until interrupted.`,
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			events, err := svc.Watch(ctx)
			if err != nil {
				return err
			}
			src := lifecycleadapter.NewSource(events)
			if err := src.Start(ctx); err != nil {
				return err
			}
			fmt.Fprintf(a.stderr, "Watching %s (Ctrl-C to stop)\n", a.path)

			format := a.outputFormat()
			for ev := range src.Events() {
				e, ok := ev.(core.Event)
				if !ok {
					continue
				}
				view := eventView{Type: e.Type, ID: e.ID, Title: e.Title, At: time.Unix(e.Timestamp, 0).UTC()}
				switch format {
				case formatJSON:
					// One object per line so the stream can be piped.
					if err := outputJSONCompact(a.stdout, view); err != nil {
						return err
					}
				case formatYAML:
					if err := outputYAML(a.stdout, []eventView{view}); err != nil {
						return err
					}
				default:
					fmt.Fprintln(a.stdout, e.String())
				}
			}
			return nil
		},
	}
}
