package main

import (
	"log"
	"log/slog"

	"marketsentiment/db"
	"marketsentiment/internal/config"
	"marketsentiment/internal/di"
	"marketsentiment/internal/handler"
	"marketsentiment/internal/metrics"
	"marketsentiment/internal/middleware"
	"marketsentiment/internal/nlp"
	"marketsentiment/internal/queue"
	"marketsentiment/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	di.ProvideLogger(cfg)

	recorder := metrics.New(prometheus.DefaultRegisterer)

	extractor := nlp.NewProseExtractor(cfg.NLPModelPath)
	if err := extractor.Warm(); err != nil {
		log.Fatalf("error loading NLP model: %v", err)
	}

	params := di.AnalyzerParams{Metrics: recorder}

	var analysisRepo *repository.AnalysisRepository
	if cfg.DatabaseURL != "" {
		if err := db.Connect(cfg.DatabaseURL); err != nil {
			log.Fatalf("error connecting to DB: %v", err)
		}
		defer db.Close()

		analysisRepo = repository.NewAnalysisRepository(db.DB)
		params.Store = analysisRepo
	} else {
		slog.Info("DATABASE_URL not configured, analysis history disabled")
	}

	var jobQueue handler.JobQueue
	var queueStats handler.QueueStats
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		if err := db.ConnectRedis(cfg.RedisURL); err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer db.CloseRedis()

		rdb = db.Redis
		redisQueue := queue.NewRedisQueue()
		jobQueue = redisQueue
		queueStats = redisQueue
	} else {
		slog.Info("REDIS_URL not configured, using in-memory cache and no background queue")
	}
	params.Redis = rdb

	analyzer := di.ProvideAnalyzer(cfg, extractor, params)

	tmpl, err := handler.LoadTemplates()
	if err != nil {
		log.Fatalf("error loading templates: %v", err)
	}

	pageHandler := handler.NewPageHandler(analyzer, cfg.LLMProvider)
	analyzeHandler := handler.NewAnalyzeHandler(analyzer, jobQueue)

	r := gin.Default()
	r.SetHTMLTemplate(tmpl)

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "X-API-Key"},
	}))

	limited := []gin.HandlerFunc{}
	if cfg.RateLimit > 0 {
		limited = append(limited, middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst).Middleware())
	}

	r.GET("/", pageHandler.GetIndex)
	r.POST("/", append(limited, pageHandler.PostIndex)...)
	r.POST("/api/analyze", append(limited, analyzeHandler.Analyze)...)
	r.POST("/api/analyses/queue", append(limited, analyzeHandler.Enqueue)...)
	r.GET("/api/categories", analyzeHandler.GetCategories)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var database handler.Pinger
	if analysisRepo != nil {
		database = analysisRepo

		historyHandler := handler.NewHistoryHandler(analysisRepo)
		r.GET("/api/analyses", historyHandler.GetAnalyses)
		r.GET("/api/analyses/:id", historyHandler.GetAnalysis)
	}

	r.GET("/health", handler.NewHealthHandler(database, queueStats).GetHealth)

	slog.Info("server starting", "port", cfg.Port, "provider", cfg.LLMProvider)

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
