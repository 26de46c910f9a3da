package di

import (
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"marketsentiment/internal/cache"
	"marketsentiment/internal/config"
	"marketsentiment/internal/nlp"
	"marketsentiment/internal/service"
	"marketsentiment/pkg/llm"
)

const memoryCacheCleanup = 10 * time.Minute

func ProvideLogger(cfg *config.Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	return logger
}

func ProvideClassifierFactory(cfg *config.Config) service.ClassifierFactory {
	opts := llm.Options{
		Model:   cfg.LLMModel,
		BaseURL: cfg.LLMBaseURL,
		Timeout: cfg.LLMTimeout,
	}
	return func(apiKey string) (llm.Classifier, error) {
		return llm.NewClassifier(cfg.LLMProvider, apiKey, opts)
	}
}

// ProvideSentimentCache prefers Redis and falls back to an in-process cache.
// It returns nil when caching is disabled.
func ProvideSentimentCache(cfg *config.Config, rdb *redis.Client) cache.SentimentCache {
	if cfg.CacheTTL <= 0 {
		return nil
	}
	if rdb != nil {
		return cache.NewRedisCache(rdb)
	}
	return cache.NewMemoryCache(cfg.CacheTTL, memoryCacheCleanup)
}

func ProvideAllowList(cfg *config.Config) *nlp.AllowList {
	if len(cfg.AllowList) == 0 {
		return nlp.DefaultAllowList()
	}
	return nlp.NewAllowList(cfg.AllowList)
}

type AnalyzerParams struct {
	Store   service.AnalysisStore
	Metrics service.Metrics
	Redis   *redis.Client
}

func ProvideAnalyzer(cfg *config.Config, extractor nlp.Extractor, p AnalyzerParams) *service.Analyzer {
	allow := ProvideAllowList(cfg)
	return service.NewAnalyzer(service.Deps{
		NewClassifier: ProvideClassifierFactory(cfg),
		ServerAPIKey:  cfg.ServerAPIKey,
		Extractor:     nlp.NewTermExtractor(extractor, allow),
		AllowList:     allow,
		Cache:         ProvideSentimentCache(cfg, p.Redis),
		CacheTTL:      cfg.CacheTTL,
		Store:         p.Store,
		Metrics:       p.Metrics,
	})
}
