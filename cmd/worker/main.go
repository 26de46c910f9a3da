package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketsentiment/db"
	"marketsentiment/internal/config"
	"marketsentiment/internal/di"
	"marketsentiment/internal/nlp"
	"marketsentiment/internal/queue"
	"marketsentiment/internal/repository"
)

const (
	popTimeout = 5 * time.Second
	retryDelay = 5 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	di.ProvideLogger(cfg)

	if cfg.ServerAPIKey == "" {
		log.Fatalf("worker requires a server API key for provider %s", cfg.LLMProvider)
	}

	if cfg.RedisURL == "" {
		log.Fatalf("worker requires REDIS_URL")
	}

	err = db.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	params := di.AnalyzerParams{Redis: db.Redis}
	if cfg.DatabaseURL != "" {
		if err := db.Connect(cfg.DatabaseURL); err != nil {
			log.Fatalf("error connecting to DB: %v", err)
		}
		defer db.Close()

		params.Store = repository.NewAnalysisRepository(db.DB)
	} else {
		slog.Warn("DATABASE_URL not configured, results will only be logged")
	}

	extractor := nlp.NewProseExtractor(cfg.NLPModelPath)
	if err := extractor.Warm(); err != nil {
		log.Fatalf("error loading NLP model: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := &worker{
		jobs:        queue.NewRedisQueue(),
		analyzer:    di.ProvideAnalyzer(cfg, extractor, params),
		maxAttempts: cfg.WorkerAttempts,
		popTimeout:  popTimeout,
		retryDelay:  retryDelay,
	}

	slog.Info("worker started", "provider", cfg.LLMProvider, "max_attempts", cfg.WorkerAttempts)
	w.run(ctx)
	slog.Info("worker stopped")
}
