package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtroode/userdesk-server/internal/config"
	"github.com/dtroode/userdesk-server/internal/logger"
	"github.com/dtroode/userdesk-server/internal/repository/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply PostgreSQL schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			if cfg.Store.Driver != config.DriverPostgres {
				return fmt.Errorf("migrations only apply to the %s driver, got %q", config.DriverPostgres, cfg.Store.Driver)
			}
			log := logger.New(cfg.LogLevel, cfg.LogFormat)

			conn, err := postgres.NewConnection(cmd.Context(), cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer conn.Close()

			log.Info("migrations applied")
			return nil
		},
	}
}
