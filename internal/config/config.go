package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	FrontendURL    string
	LogLevel       string
	LLMProvider    string
	LLMModel       string
	LLMBaseURL     string
	LLMTimeout     time.Duration
	ServerAPIKey   string
	NLPModelPath   string
	AllowList      []string
	CacheTTL       time.Duration
	RateLimit      float64
	RateBurst      int
	DatabaseURL    string
	RedisURL       string
	WorkerAttempts int
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("error loading .env file, relying on environment", "error", err)
	}

	c := &Config{
		Port:         getEnv("PORT", "8080"),
		FrontendURL:  os.Getenv("FRONTEND_URL"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LLMProvider:  strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
		LLMModel:     os.Getenv("LLM_MODEL"),
		LLMBaseURL:   os.Getenv("LLM_BASE_URL"),
		NLPModelPath: os.Getenv("NLP_MODEL_PATH"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
	}

	switch c.LLMProvider {
	case "anthropic":
		c.ServerAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	default:
		c.ServerAPIKey = os.Getenv("OPENAI_API_KEY")
	}

	if v := os.Getenv("ENTITY_ALLOWLIST"); v != "" {
		c.AllowList = strings.Split(v, ",")
	}

	var err error
	if c.LLMTimeout, err = getDuration("LLM_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if c.CacheTTL, err = getDuration("CACHE_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if c.RateLimit, err = getFloat("RATE_LIMIT_PER_SEC", 1); err != nil {
		return nil, err
	}
	if c.RateBurst, err = getInt("RATE_LIMIT_BURST", 5); err != nil {
		return nil, err
	}
	if c.WorkerAttempts, err = getInt("WORKER_MAX_ATTEMPTS", 3); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

func (c *Config) Validate() error {
	if c.LLMProvider != "openai" && c.LLMProvider != "anthropic" {
		return fmt.Errorf("LLM_PROVIDER must be 'openai' or 'anthropic', got '%s'", c.LLMProvider)
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}
	if c.WorkerAttempts < 1 {
		return fmt.Errorf("WORKER_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(name, defaultValue string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return defaultValue
}

func getDuration(name string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}

func getInt(name string, defaultValue int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}

func getFloat(name string, defaultValue float64) (float64, error) {
	v := os.Getenv(name)
	if v == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return f, nil
}
