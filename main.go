package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"gocouncil/adapters/llm"
	"gocouncil/adapters/postgres"
	"gocouncil/app"
	"gocouncil/internal/config"
	"gocouncil/internal/logging"
	"gocouncil/internal/store"
	"gocouncil/ports"
	"gocouncil/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	client, err := llm.NewClient(llm.Config{
		Model:       appConfig.AI.OpenAIModel,
		APIKey:      appConfig.AI.OpenAIKey,
		BaseURL:     appConfig.AI.BaseURL,
		Temperature: appConfig.AI.Temperature,
		MaxTokens:   appConfig.AI.MaxTokens,
		Timeout:     appConfig.AI.RequestTimeout,
	})
	if err != nil {
		logger.Fatalw("failed to create LLM client", "error", err)
	}

	judge := llm.NewJudgmentAdapter(llm.JudgmentConfig{
		Model:          appConfig.AI.OpenAIModel,
		MaxTokens:      appConfig.AI.MaxTokens,
		RequestTimeout: appConfig.AI.RequestTimeout,
		CacheTTL:       appConfig.AI.CacheTTL,
	}, client, logger)

	archive, db := initArchive(appConfig, logger)
	if db != nil {
		defer db.Close()
	}

	service := app.NewCouncilService(store.NewMemoryStore(), judge, archive, logger)

	server := ui.NewApp(service, logger)
	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}

// initArchive connects the optional PostgreSQL session archive. A missing
// DATABASE_URL disables archival; a failed connection does the same rather
// than blocking startup.
func initArchive(appConfig *config.Config, logger *zap.SugaredLogger) (ports.SessionArchive, *sqlx.DB) {
	if appConfig.Database.URL == "" {
		logger.Info("DATABASE_URL not set, session archival disabled")
		return nil, nil
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		logger.Warnw("failed to connect to archive database, archival disabled", "error", err)
		return nil, nil
	}

	repo := postgres.NewArchiveRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		logger.Warnw("failed to ensure archive schema, archival disabled", "error", err)
		db.Close()
		return nil, nil
	}
	return repo, db
}
