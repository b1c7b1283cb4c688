package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/casamontes/mayordomo/internal/bot"
	"github.com/casamontes/mayordomo/internal/common"
	"github.com/casamontes/mayordomo/internal/config"
	"github.com/casamontes/mayordomo/internal/dashboard"
	"github.com/casamontes/mayordomo/internal/engine"
	"github.com/casamontes/mayordomo/internal/llm"
	"github.com/casamontes/mayordomo/internal/storage"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot, reminders and health server",
		Long: `Starts the Telegram bot, the daily task reminders and the HTTP server
that exposes the health check and the generated dashboard. Runs until
interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return common.NewUserError("set TELEGRAM_TOKEN and ALLOWED_USER_IDS before serving", err)
	}

	// Only one bot instance may poll Telegram at a time.
	release, err := common.AcquirePIDFile(cfg.PIDFilePath)
	if err != nil {
		return err
	}
	defer release()

	logger := slog.Default()

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Cascade order is fixed: OpenRouter, Groq, then Gemini. Gemini also
	// serves all media requests.
	classifier := llm.NewClassifier([]llm.Client{
		llm.NewOpenRouterClient(cfg.OpenRouter.APIKey, cfg.OpenRouter.Model),
		llm.NewGroqClient(cfg.Groq.APIKey, cfg.Groq.Model),
		llm.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model),
	}, cfg.ClassifyTimeout, logger)

	generator := dashboard.NewGenerator(store, cfg.DashboardPath, logger)
	guard := dashboard.NewGuard(generator.Generate, logger)
	eng := engine.New(classifier, store, guard, logger)

	tgBot, err := bot.New(cfg.TelegramToken, bot.Options{
		Processor:    eng,
		Store:        store,
		Generator:    generator,
		Logger:       logger,
		AllowedUsers: cfg.AllowedUserIDs,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to telegram: %w", err)
	}

	reminders := bot.NewReminders(tgBot, store, cfg.AllowedUserIDs, logger)
	if err := reminders.Start(ctx); err != nil {
		return err
	}

	logger.Info("mayordomo running",
		"port", cfg.Port,
		"allowed_users", len(cfg.AllowedUserIDs))

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		return dashboard.Serve(grpCtx, dashboard.ServerOpts{
			Logger:       logger,
			ArtifactPath: cfg.DashboardPath,
			Port:         cfg.Port,
		})
	})
	grp.Go(func() error {
		return tgBot.Run(grpCtx)
	})

	return grp.Wait()
}
