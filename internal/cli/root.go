package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/evekit/pkg/buildinfo"
	"github.com/matzehuels/evekit/pkg/errors"
	"github.com/matzehuels/evekit/pkg/observability/prom"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var registry *prometheus.Registry

	root := &cobra.Command{
		Use:          appName,
		Short:        "evekit queries the EVE Online XML and CREST APIs",
		Long:         `evekit is a CLI for the EVE Online XML API and the public CREST API. It keeps named API keys locally, validates them, and reads character, market and alliance data.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger.With("cmd", cmd.Name())))
			if err := c.loadConfig(); err != nil {
				return err
			}
			if c.metricsFile != "" {
				registry = prometheus.NewRegistry()
				prom.New(registry).Install()
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if registry == nil {
				return nil
			}
			if err := prometheus.WriteToTextfile(c.metricsFile, registry); err != nil {
				return err
			}
			c.Logger.Debug("metrics written", "file", c.metricsFile)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.New(errors.ErrCodeInvalidInput, "%v\nRun '%s --help' for usage.", err, cmd.CommandPath())
	})

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/evekit/config.toml)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the response cache")
	flags.StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	// Register all subcommands
	root.AddCommand(c.keyCommand())
	root.AddCommand(c.charCommand())
	root.AddCommand(c.crestCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
