package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"realtor-backend/internal/config"
	"realtor-backend/internal/database"
	"realtor-backend/internal/logging"
	"realtor-backend/internal/server"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 30 * time.Second

var flagConfig string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "server",
		Short:         "Realtor listings backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "optional TOML config file")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
	)
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			return runServe(cfg, db)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			return database.Migrate(db)
		},
	}
}

func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logging.Setup(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	cfg.Warn()

	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func runServe(cfg *config.Config, db *gorm.DB) error {
	app := server.New(cfg, db)

	errc := make(chan error, 1)
	go func() {
		slog.Info("server listening", "port", cfg.HTTPPort)
		errc <- app.Listen(":" + cfg.HTTPPort)
	}()

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigint)

	select {
	case err := <-errc:
		return err
	case <-sigint:
	}

	slog.Info("shutdown requested")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
