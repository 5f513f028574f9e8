package main

import (
	"errors"

	"clinic-medications/internal/adapters/storage/postgres"
	"clinic-medications/internal/platform/config"
	"clinic-medications/internal/platform/logger"

	"github.com/spf13/cobra"
)

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.DB.DSN == "" {
				return errors.New("db.dsn is not configured")
			}

			log := newLogger(cfg)
			defer logger.Sync(log)

			db, err := postgres.Open(cfg.DB.DSN, postgres.PoolOptions{
				MaxOpenConns: cfg.DB.MaxOpenConns,
				MaxIdleConns: cfg.DB.MaxIdleConns,
			})
			if err != nil {
				return err
			}
			defer db.Close()

			return postgres.Migrate(db, log)
		},
	}
}
