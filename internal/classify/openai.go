package classify

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/creedharan/sourcescore/internal/model"
)

// OpenAIClassifier implements Classifier over any Chat Completions
// compatible endpoint (OpenAI itself, or Groq and friends via BaseURL).
type OpenAIClassifier struct {
	client *openai.Client
	cfg    model.ClassifierConfig
}

// NewOpenAIClassifier creates an OpenAI-backed classifier.
func NewOpenAIClassifier(cfg model.ClassifierConfig) (*OpenAIClassifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("classifier API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIClassifier{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// Name returns the provider name.
func (c *OpenAIClassifier) Name() string {
	return "openai"
}

// IsAvailable checks the endpoint with a lightweight model listing.
func (c *OpenAIClassifier) IsAvailable(ctx context.Context) bool {
	if _, err := c.client.ListModels(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "classifier availability check failed: %v\n", err)
		return false
	}
	return true
}

// Classify sends one article's voices for judgment.
func (c *OpenAIClassifier) Classify(ctx context.Context, req Request) (*Response, error) {
	mdl := c.cfg.Model
	if mdl == "" {
		mdl = openai.GPT4oMini
	}

	maxTokens := c.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2000
	}

	chatReq := openai.ChatCompletionRequest{
		Model: mdl,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a precise news-sourcing classifier. You respond with strict JSON only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(req),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.0, // Classification must be reproducible
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %v", model.ErrClassifierTimeout, err)
		}
		return nil, fmt.Errorf("classifier API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", model.ErrClassifierMalformed)
	}

	return ParseResponse(strings.TrimSpace(resp.Choices[0].Message.Content))
}
