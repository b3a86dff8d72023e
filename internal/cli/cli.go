package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matzehuels/sourceloc/pkg/buildinfo"
	"github.com/matzehuels/sourceloc/pkg/config"
	"github.com/matzehuels/sourceloc/pkg/scm"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and completions.
	appName = "sourceloc"

	// envPrefix prefixes environment variables bound to flags
	// (SOURCELOC_CONFIG, SOURCELOC_ADDRESS, SOURCELOC_VERBOSE).
	envPrefix = "SOURCELOC"
)

// Log levels accepted by [New].
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	v      *viper.Viper
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return &CLI{
		Logger: newLogger(w, level),
		v:      v,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Sourceloc resolves where catalog entities live in source control",
		Long:         `Sourceloc reads the backstage.io/source-location annotation of catalog entities and reports the source-control URL together with the SCM integration (github, gitlab, bitbucket, azure) that owns it.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c.v.GetBool("verbose") {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().String("config", "", "path to an app-config file with an integrations section (YAML or TOML)")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")
	c.bindFlag("config", root.PersistentFlags().Lookup("config"))
	c.bindFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	// Register all subcommands
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.integrationsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// bindFlag binds a flag to its viper key so the SOURCELOC_ environment
// variable of the same name is used when the flag is not set.
func (c *CLI) bindFlag(key string, f *pflag.Flag) {
	if err := c.v.BindPFlag(key, f); err != nil {
		c.Logger.Fatal("Failed to bind flag", "flag", key, "err", err)
	}
}

// =============================================================================
// Config & Registry
// =============================================================================

// loadConfig reads the file named by --config or SOURCELOC_CONFIG.
// Without either, the empty config is returned.
func (c *CLI) loadConfig() (*config.Config, error) {
	path := c.v.GetString("config")
	if path != "" {
		c.Logger.Debug("Loading config", "path", path)
	}
	return config.Load(path)
}

// loadRegistry builds the integration registry from the loaded config.
func (c *CLI) loadRegistry() (*scm.Integrations, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	reg, err := scm.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("Integrations ready", "count", len(reg.List()))
	return reg, nil
}
