package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/dictnotes/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config [key] [value]",
		Short: "Get or set configuration values",
		Long: `Get or set values in the config file.

Usage:
  dictnotes config                        # Show all config
  dictnotes config data-file              # Get one value
  dictnotes config data-file ~/notes.json # Set a value
  dictnotes config format ""              # Clear a value

Keys:
  data-file  Data file used when neither --file nor DICTNOTES_FILE is set
  format     Default output format (text, json or yaml)`,
		Args: usageArgs(cobra.MaximumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			cfg, err := config.LoadFile(path)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				if ok, err := outputStructured(a.stdout, a.outputFormat(), cfg); ok {
					return err
				}
				fmt.Fprintf(a.stdout, "data-file: %s\n", cfg.DataFile)
				fmt.Fprintf(a.stdout, "format:    %s\n", cfg.Format)
				return nil
			}

			field, err := configField(cfg, args[0])
			if err != nil {
				return err
			}

			if len(args) == 1 {
				fmt.Fprintln(a.stdout, *field)
				return nil
			}

			value := strings.TrimSpace(args[1])
			if field == &cfg.Format && value != "" && !validFormat(value) {
				return usageErrorf("unknown format %q (want text, json or yaml)", value)
			}
			*field = value
			if err := cfg.Save(path); err != nil {
				return err
			}
			a.logger.Debug("config saved", "path", path, "key", args[0])
			fmt.Fprintf(a.stdout, "Set %s in %s\n", args[0], path)
			return nil
		},
	}
}

// configField maps a key (data-file or data_file) to the field it edits.
func configField(cfg *config.Config, key string) (*string, error) {
	switch strings.ReplaceAll(strings.ToLower(key), "_", "-") {
	case "data-file":
		return &cfg.DataFile, nil
	case "format":
		return &cfg.Format, nil
	}
	return nil, usageErrorf("unknown config key %q (want data-file or format)", key)
}
