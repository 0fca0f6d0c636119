package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/logging"
	"github.com/spf13/cobra"
)

// app holds the state shared by all commands: global flags and what is derived from them.
type app struct {
	configPath string
	logLevel   string
	dir        string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "automata",
		Short: "Automata loads deterministic finite automata and classifies words against them",
		Long: `Automata reads DFA definitions in a plain five-section text format and classifies
words as ACCEPTED, REJECTED or INVALID. It runs from the command line or as an HTTP/MCP server.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	// Persistent flags (available to all commands)
	cmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "Path to the configuration file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	cmd.PersistentFlags().StringVar(&a.dir, "dir", "", "Directory or redis:// URL holding definitions (overrides config)")

	cmd.AddCommand(
		newRunCmd(a),
		newValidateCmd(a),
		newGraphCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newReportCmd(a),
		newDefinitionsCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// Execute builds the command tree and runs it, exiting with status 1 on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.dir != "" {
		cfg.Definitions = a.dir
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), level)
	return nil
}

// runtime builds the engine, reading definitions from dir when it is not empty.
func (a *app) runtime(dir string) (*cli.Runtime, error) {
	cfg := a.cfg
	if dir != "" {
		cfg.Definitions = dir
	}
	return cli.NewRuntime(cfg, a.logger)
}
