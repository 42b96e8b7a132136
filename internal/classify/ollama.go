package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/creedharan/sourcescore/internal/model"
	"github.com/creedharan/sourcescore/internal/util"
)

// OllamaClassifier implements Classifier against a local Ollama server.
type OllamaClassifier struct {
	baseURL    string
	httpClient *http.Client
	cfg        model.ClassifierConfig
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	System  string        `json:"system,omitempty"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type ollamaError struct {
	Error string `json:"error"`
}

// NewOllamaClassifier creates an Ollama-backed classifier.
func NewOllamaClassifier(cfg model.ClassifierConfig, proxy model.HTTPConfig) (*OllamaClassifier, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama model must be specified (e.g. llama3.1:8b)")
	}

	return &OllamaClassifier{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(proxy.HTTPProxy, proxy.HTTPSProxy, proxy.NoProxy),
			},
		},
		cfg: cfg,
	}, nil
}

// Name returns the provider name.
func (c *OllamaClassifier) Name() string {
	return "ollama"
}

// IsAvailable checks that the Ollama server answers.
func (c *OllamaClassifier) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ollama availability check failed (%s): %v\n", c.baseURL, err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

// Classify sends one article's voices for judgment.
func (c *OllamaClassifier) Classify(ctx context.Context, req Request) (*Response, error) {
	apiReq := ollamaRequest{
		Model:  c.cfg.Model,
		Prompt: BuildPrompt(req),
		Stream: false,
		System: "You are a precise news-sourcing classifier. You respond with strict JSON only.",
		Format: "json",
		Options: ollamaOptions{
			Temperature: 0.0,
			NumPredict:  c.cfg.MaxTokens,
		},
	}

	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %v", model.ErrClassifierTimeout, err)
		}
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		var apiErr ollamaError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("ollama error (%d): %s", httpResp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("ollama error (%d): %s", httpResp.StatusCode, string(respBody))
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return ParseResponse(strings.TrimSpace(resp.Response))
}
