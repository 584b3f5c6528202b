// Package cli implements the nfbstudio command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nfbstudio/pkg/buildinfo"
	"github.com/matzehuels/nfbstudio/pkg/clipboard"
	"github.com/matzehuels/nfbstudio/pkg/project"
	"github.com/matzehuels/nfbstudio/pkg/scheme"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "nfbstudio"

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

	verbose      bool
	configPath   string
	clipboardDir string
	config       Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "nfbstudio designs neurofeedback experiments",
		Long: `nfbstudio edits the signal processing schemes of neurofeedback experiments
and exports them for the NFB runtime.

A project is a JSON file holding the experiment settings and a scheme: a graph
of typed processing nodes. Fragments of a scheme can be copied to a clipboard
shared between invocations and pasted into any project.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/nfbstudio/config.toml)")
	root.PersistentFlags().StringVar(&c.clipboardDir, "clipboard-dir", "", "clipboard directory (overrides config)")

	root.AddCommand(c.newCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.kindsCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.connectCommand())
	root.AddCommand(c.disconnectCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.copyCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.pasteCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.clipboardCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file, applies the log level and attaches the
// logger to the command context. Flags win over the config file.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	path := c.configPath
	if path == "" {
		var err error
		if path, err = configFile(); err != nil {
			c.Logger.Debug("no config directory", "err", err)
		}
	}
	if path != "" {
		cfg, err := LoadConfig(path)
		if err != nil {
			return err
		}
		c.config = cfg
	}

	if c.verbose {
		c.SetLogLevel(LogDebug)
	} else if c.config.LogLevel != "" {
		level, err := log.ParseLevel(c.config.LogLevel)
		if err != nil {
			return fmt.Errorf("config log_level: %w", err)
		}
		c.SetLogLevel(level)
	}
	if c.clipboardDir != "" {
		c.config.ClipboardDir = c.clipboardDir
	}

	c.Logger.Debug("starting", "version", buildinfo.UserAgent(), "config", path)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Project Helpers
// =============================================================================

// sceneOptions returns the scene options derived from the config.
func (c *CLI) sceneOptions() []scheme.Option {
	return []scheme.Option{
		scheme.WithLogger(c.Logger),
		scheme.WithPasteOffset(c.config.pasteOffset()),
	}
}

// loadProject reads the project at path.
func (c *CLI) loadProject(ctx context.Context, path string) (*project.Project, error) {
	p, err := project.ReadFile(path, c.sceneOptions()...)
	if err != nil {
		return nil, err
	}
	loggerFromContext(ctx).Debug("loaded project", "path", path,
		"nodes", p.Graph().NodeCount(), "edges", p.Graph().EdgeCount())
	return p, nil
}

// saveProject writes p back to path.
func (c *CLI) saveProject(ctx context.Context, path string, p *project.Project) error {
	if err := project.WriteFile(path, p); err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("saved project", "path", path)
	return nil
}

// editProject loads the project at path, applies edit and saves it when
// edit succeeds.
func (c *CLI) editProject(ctx context.Context, path string, edit func(*project.Project) error) error {
	p, err := c.loadProject(ctx, path)
	if err != nil {
		return err
	}
	if err := edit(p); err != nil {
		return err
	}
	return c.saveProject(ctx, path, p)
}

// openClipboard returns the file clipboard shared between invocations.
func (c *CLI) openClipboard() (*clipboard.File, error) {
	dir := c.config.ClipboardDir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return nil, fmt.Errorf("get clipboard dir: %w", err)
		}
	}
	return clipboard.NewFile(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/nfbstudio/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/nfbstudio/).
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
