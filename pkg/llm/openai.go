package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = openai.ChatModelGPT3_5Turbo

type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
	opts   Options
}

func NewOpenAIClient(apiKey string, opts Options) *OpenAIClient {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	model := defaultOpenAIModel
	if opts.Model != "" {
		model = openai.ChatModel(opts.Model)
	}

	client := openai.NewClient(reqOpts...)
	return &OpenAIClient{
		client: &client,
		model:  model,
		opts:   opts,
	}
}

func (c *OpenAIClient) Provider() string {
	return ProviderOpenAI
}

func (c *OpenAIClient) Model() string {
	return string(c.model)
}

func (c *OpenAIClient) Classify(ctx context.Context, input ClassifyInput) (*ClassifyResult, error) {
	ctx, cancel := withTimeout(ctx, c.opts.Timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage(BuildUserPrompt(input)),
		},
		Temperature: openai.Float(0.0),
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	return &ClassifyResult{
		Label:     cleanLabel(resp.Choices[0].Message.Content),
		Provider:  ProviderOpenAI,
		ModelUsed: c.Model(),
	}, nil
}
