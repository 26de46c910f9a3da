package llm

import (
	"context"
	"fmt"
	"time"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type ClassifyInput struct {
	Category  string
	Statement string
}

type ClassifyResult struct {
	Label     string
	Provider  string
	ModelUsed string
}

type Classifier interface {
	Classify(ctx context.Context, input ClassifyInput) (*ClassifyResult, error)
	Provider() string
	Model() string
}

type Options struct {
	// Model overrides the provider default when set.
	Model   string
	BaseURL string
	Timeout time.Duration
}

func NewClassifier(provider, apiKey string, opts Options) (Classifier, error) {
	switch provider {
	case "", ProviderOpenAI:
		return NewOpenAIClient(apiKey, opts), nil
	case ProviderAnthropic:
		return NewAnthropicClient(apiKey, opts), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
