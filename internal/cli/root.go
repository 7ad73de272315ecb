package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/licenseaudit/pkg/buildinfo"
	"github.com/matzehuels/licenseaudit/pkg/config"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Before any subcommand runs, the log level is set from --verbose and the
// configuration is loaded from --config (or ./licenseaudit.toml), .env and
// the environment. Subcommands apply their own flags on top of c.Config.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "licenseaudit reports the licenses of production dependencies across repositories",
		Long:         `licenseaudit scans every repository directory under a root, reads npm and Composer manifests, resolves each production dependency's license from the lock file or the package registry, and reports which repositories use which dependency.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if c.verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)

			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			if cfg.Source != "" {
				c.Logger.Debug("loaded config", "path", cfg.Source)
			}

			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+config.DefaultFile+" if present)")

	root.AddCommand(c.scanCommand())
	root.AddCommand(c.lookupCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
