package di

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"marketsentiment/internal/cache"
	"marketsentiment/internal/config"
	"marketsentiment/internal/nlp"
)

func TestProvideSentimentCache(t *testing.T) {
	c := ProvideSentimentCache(&config.Config{CacheTTL: 0}, nil)
	assert.Equal(t, nil, c)

	c = ProvideSentimentCache(&config.Config{CacheTTL: time.Minute}, nil)
	_, ok := c.(*cache.MemoryCache)
	assert.Equal(t, true, ok)
}

func TestProvideClassifierFactory(t *testing.T) {
	factory := ProvideClassifierFactory(&config.Config{LLMProvider: "anthropic", LLMModel: "claude-test"})

	c, err := factory("sk-test")

	assert.Equal(t, nil, err)
	assert.Equal(t, "anthropic", c.Provider())
	assert.Equal(t, "claude-test", c.Model())
}

func TestProvideAllowList(t *testing.T) {
	assert.Equal(t, nlp.DefaultStockEntities, ProvideAllowList(&config.Config{}).Terms())
	assert.Equal(t, []string{"Nvidia"}, ProvideAllowList(&config.Config{AllowList: []string{"Nvidia"}}).Terms())
}

func TestProvideAnalyzer(t *testing.T) {
	a := ProvideAnalyzer(&config.Config{LLMProvider: "openai", ServerAPIKey: "sk-server"}, nlp.NewProseExtractor(""), AnalyzerParams{})

	assert.Equal(t, true, a.HasServerCredential())
	assert.Equal(t, 9, len(a.AllowList().Terms()))
}
