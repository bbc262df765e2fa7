package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/pkg/buildinfo"
	"github.com/matzehuels/netgraph/pkg/config"
	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/pipeline"
	"github.com/matzehuels/netgraph/pkg/topology"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "netgraph"

// Log levels exported for use in main.go.
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

	// Global flag values, bound to the root command's persistent flags.
	configPath string
	layers     string
	seed       uint64
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Netgraph draws layered neural network diagrams",
		Long: `Netgraph draws a fully connected feed-forward network as a diagram of
neuron columns on colored layer bands. Hovering a neuron emphasizes its
connections and dims the rest.

Layer sizes are given as arguments (netgraph show 3 6 10), with --layers,
or in the config file.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/netgraph/config.toml)")
	root.PersistentFlags().StringVar(&c.layers, "layers", "", "layer sizes, e.g. 3,6,10 (overrides config)")
	root.PersistentFlags().Uint64Var(&c.seed, "seed", pipeline.DefaultSeed, "seed for random connection weights")

	// Register all subcommands
	root.AddCommand(c.showCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Options Helpers
// =============================================================================

// loadConfig reads the config file and applies the global flags and layer
// arguments on top. Positional counts win over --layers, which wins over
// the file.
func (c *CLI) loadConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	cfg, err := c.readConfig()
	if err != nil {
		return cfg, err
	}

	switch {
	case len(args) > 0:
		t, err := topology.FromArgs(args)
		if err != nil {
			return cfg, err
		}
		cfg.Layers = t.Counts()
	case c.layers != "":
		t, err := topology.Parse(c.layers)
		if err != nil {
			return cfg, err
		}
		cfg.Layers = t.Counts()
	}

	if f := cmd.Flags().Lookup("seed"); f != nil && f.Changed {
		cfg.Weights.Seed = c.seed
	}
	return cfg, cfg.Validate()
}

func (c *CLI) readConfig() (config.Config, error) {
	if c.configPath != "" {
		if err := errors.ValidatePath(c.configPath); err != nil {
			return config.Config{}, err
		}
		return config.Load(c.configPath)
	}
	path, err := config.DefaultPath()
	if err != nil {
		c.Logger.Debug("no config directory, using defaults", "err", err)
		return config.Default(), nil
	}
	cfg, err := config.LoadOrDefault(path)
	if err == nil {
		c.Logger.Debug("loaded config", "path", path)
	}
	return cfg, err
}

// loadOptions resolves the pipeline options for a command.
func (c *CLI) loadOptions(cmd *cobra.Command, args []string) (pipeline.Options, error) {
	cfg, err := c.loadConfig(cmd, args)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts.Logger = c.Logger
	return opts, nil
}
