package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ossinfo/pkg/buildinfo"
	"github.com/matzehuels/ossinfo/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Before any subcommand runs, the config file is loaded and the logger is
// attached to the command context. At debug level every repository request
// is logged as well.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "ossinfo collects license information for Gradle dependencies",
		Long: `ossinfo reads the output of "gradle dependencies", looks every direct
dependency up in Maven Central or Google Maven and reports its newest
version, packaging, name, description and licenses.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			if c.Logger.GetLevel() <= log.DebugLevel {
				observability.SetHTTPHooks(&debugHTTPHooks{logger: c.Logger})
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/ossinfo/config.toml)")

	// Register all subcommands
	root.AddCommand(c.collectCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	// cobra adds "completion bash|zsh|fish|powershell" on execution.
	root.CompletionOptions.HiddenDefaultCmd = false

	return root
}

// loadConfig loads --config, or the default config file when it exists.
func (c *CLI) loadConfig() error {
	path, explicit := c.configPath, c.configPath != ""
	if !explicit {
		p, err := configFile()
		if err != nil {
			c.Logger.Debugf("no config file: %v", err)
			return nil
		}
		path = p
	}

	cfg, unknown, err := loadConfig(path, explicit)
	if err != nil {
		return err
	}
	for _, k := range unknown {
		c.Logger.Warnf("unknown config key %q in %s", k, path)
	}
	c.config = cfg
	return nil
}
