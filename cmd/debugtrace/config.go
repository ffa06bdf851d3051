package main

import (
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/bjaus/debugtrace"
	"github.com/bjaus/debugtrace/internal/logging"
)

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := debugtrace.LoadConfig(opts.configPath)
			if err != nil {
				log := logging.Get("cli")
				log.Info().Err(err).Msg("Some config values were replaced by defaults")
			}

			out, err := toml.Marshal(map[string]debugtrace.Config{"debugtrace": cfg})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
