package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/casamontes/mayordomo/internal/config"
	"github.com/casamontes/mayordomo/internal/dashboard"
	"github.com/casamontes/mayordomo/internal/storage"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Regenerate the dashboard artifact once and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			generator := dashboard.NewGenerator(store, cfg.DashboardPath, slog.Default())
			if err := generator.Generate(cmd.Context()); err != nil {
				return err
			}

			slog.Info("dashboard written", "path", cfg.DashboardPath)
			return nil
		},
	}
}
