// Package main provides the CLI entry point for bobine.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lucas-science/bobine/internal/config"
	"github.com/lucas-science/bobine/internal/logging"
	"github.com/lucas-science/bobine/pkg/bobine"
	"github.com/spf13/cobra"
)

var (
	configPath string
	envFile    string
	pretty     bool
)

// app carries what every command needs once flags are parsed.
type app struct {
	opts   bobine.Options
	log    *slog.Logger
	closer io.Closer
	stdout io.Writer
	stdin  io.Reader
}

func main() {
	a := &app{stdout: os.Stdout, stdin: os.Stdin}
	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bobine",
		Short: "Build GC and pyrolysis reports from experiment directories",
		Long: `bobine reads the context, pyrolysis and chromatography exports of an
experiment directory and writes spreadsheet reports with charts.
Every command prints a JSON object with a "result" or an "error" key.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.closer != nil {
				a.closer.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before the configuration")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	for _, act := range actions {
		rootCmd.AddCommand(a.command(act))
	}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "interactive",
		Short: "Answer tab-separated commands read from stdin, one JSON line each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.interactive(cmd.Context())
		},
	})
	return rootCmd
}

// setup loads the environment file, the configuration and the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return a.fail(fmt.Errorf("failed to load %s: %w", envFile, err))
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return a.fail(err)
	}
	log, closer, err := logging.New(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return a.fail(err)
	}
	slog.SetDefault(log)
	a.log, a.closer = log, closer
	a.opts = cfg.Options()
	a.opts.Logger = log
	return nil
}

// fail prints the error envelope and returns err for the exit code.
func (a *app) fail(err error) error {
	if werr := writeJSON(a.stdout, response{Error: err.Error()}, pretty); werr != nil {
		return werr
	}
	return err
}
