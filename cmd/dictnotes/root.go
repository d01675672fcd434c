package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aretw0/dictnotes"
	"github.com/aretw0/dictnotes/internal/config"
	"github.com/aretw0/dictnotes/internal/platform"
	"github.com/aretw0/dictnotes/pkg/core"
)

// app carries the state of one invocation: global flags, writers and the lazily opened service.
type app struct {
	stdout io.Writer
	stderr io.Writer

	dataFile string
	format   string
	verbose  bool

	logger *slog.Logger
	cfg    *config.Config
	path   string
	source platform.Source
	svc    *core.Service
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return exitCode(err)
	}
	return ExitSuccess
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "dictnotes",
		Short: "Tagged notes kept in a single JSON file",
		Long: `dictnotes stores short notes with tags and an optional description.

All notes live in one JSON file. The file is chosen from --file, then
DICTNOTES_FILE (a .env file is honoured), then a .dictnotes.json in the
current directory or above, then data_file in ~/.config/dictnotes/config.yml,
and finally ~/.config/dictnotes/notes.json.`,
		Version:       dictnotes.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			opts := &slog.HandlerOptions{
				Level: level,
			}
			a.logger = slog.New(slog.NewTextHandler(a.stderr, opts))

			_ = godotenv.Load()

			if a.format != "" && !validFormat(a.format) {
				return usageErrorf("unknown format %q (want text, json or yaml)", a.format)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			return cmd.Help()
		},
	}

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err: err}
	})

	root.PersistentFlags().StringVarP(&a.dataFile, "file", "f", "", "Data file (overrides DICTNOTES_FILE and config)")
	root.PersistentFlags().StringVarP(&a.format, "format", "o", "", "Output format: text, json or yaml")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newEditCmd(a),
		newRemoveCmd(a),
		newTagCmd(a),
		newTagsCmd(a),
		newWatchCmd(a),
		newInfoCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// service resolves the data file and opens the note service on first use.
func (a *app) service() (*core.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	if a.logger == nil {
		a.logger = slog.New(slog.DiscardHandler)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	a.cfg = cfg

	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	path, source, err := platform.ResolveDataPath(a.dataFile, wd, cfg)
	if err != nil {
		return nil, err
	}
	a.path, a.source = path, source
	a.logger.Debug("data file resolved", "path", path, "source", source)

	svc, err := dictnotes.New(path, dictnotes.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	a.svc = svc
	return svc, nil
}

// outputFormat returns the flag value, then the configured default, then text.
func (a *app) outputFormat() string {
	if a.format != "" {
		return a.format
	}
	if a.cfg != nil && validFormat(a.cfg.Format) {
		return a.cfg.Format
	}
	return formatText
}

// idFrom picks the note ID from the single positional argument or --id, never both.
func idFrom(args []string, idFlag string) (string, error) {
	switch {
	case idFlag != "" && len(args) > 0:
		return "", usageErrorf("give the note ID either as an argument or with --id, not both")
	case idFlag != "":
		return idFlag, nil
	case len(args) == 1:
		return args[0], nil
	default:
		return "", usageErrorf("a note ID is required")
	}
}
