// Package cli implements the flowcanvas command-line interface.
//
// Commands:
//   - run: open the canvas in a window
//   - check-config: validate a TOML config and print the effective values
//   - script: replay a JSON interaction script headlessly and report the result
//
// All commands accept --verbose (-v) for debug-level logging and --config
// for a TOML config file.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/flowcanvas"
)

const appName = "flowcanvas"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out        io.Writer
	configPath string
}

// New creates a CLI that logs to w at level and prints results to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), out: os.Stdout}
}

// SetOutput redirects command output.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "flowcanvas is a node-graph editor canvas",
		Long:         `flowcanvas opens a pannable, zoomable node-graph canvas where script, shot, text, image and video nodes are wired together and their text flows along the edges.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML config file")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.checkConfigCommand())
	root.AddCommand(c.scriptCommand())
	return root
}

// loadConfig returns the config named by --config, or the defaults.
func (c *CLI) loadConfig() (*flowcanvas.Config, error) {
	if c.configPath == "" {
		return flowcanvas.DefaultConfig(), nil
	}
	cfg, err := flowcanvas.LoadConfig(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("config loaded", "path", c.configPath)
	return cfg, nil
}

// newCanvas builds a canvas from cfg sharing one registry between the core
// and the hit-test layout.
func (c *CLI) newCanvas(cfg *flowcanvas.Config) (*flowcanvas.Canvas, *flowcanvas.Registry) {
	reg := cfg.Registry()
	canvas := flowcanvas.New(flowcanvas.Options{
		Config:   cfg,
		Registry: reg,
		Logger:   c.Logger,
	})
	return canvas, reg
}
