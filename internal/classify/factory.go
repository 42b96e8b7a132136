package classify

import (
	"fmt"
	"strings"

	"github.com/creedharan/sourcescore/internal/model"
)

// NewClassifier creates a classifier from configuration. An empty
// provider selects the offline heuristic rules.
func NewClassifier(cfg model.ClassifierConfig, http model.HTTPConfig) (Classifier, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIClassifier(cfg)

	case "groq":
		// Groq speaks the same chat-completions dialect.
		if cfg.BaseURL == "" {
			cfg.BaseURL = "https://api.groq.com/openai/v1"
		}
		return NewOpenAIClassifier(cfg)

	case "ollama":
		return NewOllamaClassifier(cfg, http)

	case "", "heuristic":
		return NewHeuristicClassifier(), nil

	default:
		return nil, fmt.Errorf("unknown classifier provider: %s (supported: openai, groq, ollama, heuristic)", cfg.Provider)
	}
}
