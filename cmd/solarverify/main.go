// @title        SolarVerify API
// @version      1.0
// @description  Grades UK domestic solar quotes against market benchmarks.
// @BasePath     /api
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"solarverify/internal/app"
	"solarverify/internal/config"
	"solarverify/internal/logging"
)

var (
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "solarverify",
	Short:         "SolarVerify quote grading service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
		logger, err = logging.New(cfg.LogLevel, cfg.Server.Mode == "debug")
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := app.New(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(); err != nil {
				logger.Warn("close", zap.Error(err))
			}
		}()
		return a.Run(ctx)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Migrate(cmd.Context(), cfg); err != nil {
			return err
		}
		logger.Info("schema up to date")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the bundled component and pricing catalogue",
	Long: `Upserts the reference catalogue into the database. Existing rows are
updated in place, so the command can be re-run after editing the catalogue.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := app.Seed(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		logger.Info("catalogue seeded",
			zap.Int("components", s.Components),
			zap.Int("pricing", s.Pricing),
			zap.Int("installers", s.Installers))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $SOLARVERIFY_CONFIG or config/config.yaml)")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
