package main

import (
	"context"

	httpadapter "portfolio-studio/internal/adapter/http"
	repo "portfolio-studio/internal/adapter/repository"
	"portfolio-studio/internal/config"
	"portfolio-studio/internal/domain"
	"portfolio-studio/internal/infrastructure/migration"
	"portfolio-studio/internal/usecase"
	"portfolio-studio/pkg/ai"
	infra "portfolio-studio/pkg/infrastructure"
	"portfolio-studio/pkg/logger"

	"github.com/jackc/pgx/v4/pgxpool"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// snapshot DB is optional; the engine is in-memory either way
	var pool *pgxpool.Pool
	if p, err := infra.NewSessionsPool(ctx); err != nil {
		log.Warn("snapshot DB not available, persistence disabled", "error", err)
	} else {
		pool = p
		if err := migration.RunMigrations(ctx, pool, log); err != nil {
			log.Warn("migrations failed, persistence disabled", "error", err)
			pool = nil
		}
	}

	var backend ai.Generator = ai.NewSimulated()
	if cfg.AIServiceURL != "" {
		backend = ai.NewClient()
		log.Info("using remote generation backend", "url", cfg.AIServiceURL)
	}

	sessionsRepo := repo.NewSessionsRepo(pool)
	exporter := usecase.NewExporter(infra.NewChromedpRenderer(), cfg.TemplatesDir, log)
	datasets := func(ctx context.Context, email string) domain.Datasets {
		return repo.DatasetsForUser(ctx, pool, email)
	}

	app := httpadapter.NewApp()
	h := httpadapter.NewHandler(backend, sessionsRepo, exporter, datasets, log)
	h.Register(app)

	log.Info("listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server failed", "error", err)
	}
}
