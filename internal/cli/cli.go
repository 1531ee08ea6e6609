// Package cli implements the scorepager command-line interface.
//
// # Commands
//
//   - layout: lay out one or more score documents and write layout JSON
//   - scale: show the scale each sizing mode resolves to
//   - pages: print the page breakdown of a score as a table
//   - view: page through a score interactively in the terminal
//   - serve: run the HTTP API
//   - completion: generate shell completion scripts
//
// # Configuration
//
// Defaults come from pkg/pipeline, are overridden by the TOML config file
// ($XDG_CONFIG_HOME/scorepager/config.toml or --config), and finally by
// command-line flags.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// turns on the layout hook trace.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scorepager/pkg/buildinfo"
	"github.com/matzehuels/scorepager/pkg/observability"
	"github.com/matzehuels/scorepager/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "scorepager"

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
	Config Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
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
		Short:        "Scorepager lays out scanned sheet music on screen-sized pages",
		Long:         `Scorepager takes the staves detected on scanned score pages and reflows them into columns and pages that fit a screen, keeping the reading order and starting every piece on a fresh page.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/scorepager/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.scaleCommand())
	root.AddCommand(c.pagesCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup applies the verbosity flag, loads the config file and attaches the
// logger to the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		observability.SetLayoutHooks(&logHooks{logger: c.Logger})
	}

	path, explicit := c.configPath, c.configPath != ""
	if !explicit {
		p, err := configFile()
		if err != nil {
			c.Logger.Debug("no config directory", "err", err)
		}
		path = p
	}
	cfg, err := LoadConfig(path, explicit)
	if err != nil {
		return err
	}
	c.Config = cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using the XDG standard
// (~/.config/scorepager/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// configFile returns the default config file path.
func configFile() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// sessionDir returns the session directory: the configured one, or
// sessions/ under the config directory.
func (c *CLI) sessionDir() (string, error) {
	if c.Config.Session.Dir != "" {
		return c.Config.Session.Dir, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sessions"), nil
}
