package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = anthropic.ModelClaudeHaiku4_5

type AnthropicClient struct {
	client *anthropic.Client
	model  anthropic.Model
	opts   Options
}

func NewAnthropicClient(apiKey string, opts Options) *AnthropicClient {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	model := defaultAnthropicModel
	if opts.Model != "" {
		model = anthropic.Model(opts.Model)
	}

	client := anthropic.NewClient(reqOpts...)
	return &AnthropicClient{
		client: &client,
		model:  model,
		opts:   opts,
	}
}

func (c *AnthropicClient) Provider() string {
	return ProviderAnthropic
}

func (c *AnthropicClient) Model() string {
	return string(c.model)
}

func (c *AnthropicClient) Classify(ctx context.Context, input ClassifyInput) (*ClassifyResult, error) {
	ctx, cancel := withTimeout(ctx, c.opts.Timeout)
	defer cancel()

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 64,
		System: []anthropic.TextBlockParam{
			{Text: SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildUserPrompt(input))),
		},
		Temperature: anthropic.Float(0.0),
	})

	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	text, ok := firstText(resp.Content)
	if !ok {
		return nil, fmt.Errorf("no response from anthropic")
	}

	return &ClassifyResult{
		Label:     cleanLabel(text),
		Provider:  ProviderAnthropic,
		ModelUsed: c.Model(),
	}, nil
}

func firstText(blocks []anthropic.ContentBlockUnion) (string, bool) {
	for _, b := range blocks {
		if b.Type == "text" {
			return b.Text, true
		}
	}
	return "", false
}
