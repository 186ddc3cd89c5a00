// Package cli wires the bookshelf command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/entrypoint"
	"github.com/mrlokans/bookshelf/internal/logging"
)

// app carries the state shared by every subcommand after the root
// PersistentPreRunE has run.
type app struct {
	version string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd builds the command tree. Running the root command without a
// subcommand starts the HTTP server.
func NewRootCmd(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:           "bookshelf",
		Short:         "Personal reading tracker",
		Long:          "bookshelf tracks the books you own, what you have read and when you finished them.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runServe,
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.newServeCmd(),
		a.newStatsCmd(),
		a.newImportCmd(),
		a.newExportCmd(),
	)
	return root
}

func (a *app) setup() error {
	a.cfg = config.NewConfig()

	level := a.cfg.Logging.Level
	if a.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, a.cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *app) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  a.runServe,
	}
}

func (a *app) runServe(cmd *cobra.Command, args []string) error {
	return entrypoint.Run(cmd.Context(), a.cfg, a.logger, a.version)
}
