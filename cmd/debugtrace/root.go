package main

import (
	"github.com/spf13/cobra"

	"github.com/bjaus/debugtrace/internal/logging"
)

// options holds the global flags.
type options struct {
	verbosity  int
	configPath string
}

// NewRootCmd builds the command tree. A fresh tree per call keeps flag
// state out of package variables.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "debugtrace",
		Short: "Render structured documents the way debugtrace traces values",
		Long: `debugtrace renders JSON, YAML and TOML documents with the debugtrace
value renderer and writes them to the configured trace log.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupWriter(cmd.ErrOrStderr(), opts.verbosity)
			log := logging.Get("cli")
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ./debugtrace.toml, then $XDG_CONFIG_HOME/debugtrace/debugtrace.toml)")

	root.AddCommand(
		newRenderCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}
