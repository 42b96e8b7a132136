package classify

import (
	"testing"

	"github.com/creedharan/sourcescore/internal/model"
)

func TestNewClassifierSelection(t *testing.T) {
	httpCfg := model.HTTPConfig{}

	c, err := NewClassifier(model.ClassifierConfig{}, httpCfg)
	if err != nil {
		t.Fatal(err)
	}
	if c.Name() != "heuristic" {
		t.Errorf("empty provider selected %s, want heuristic", c.Name())
	}

	c, err = NewClassifier(model.ClassifierConfig{Provider: "openai", APIKey: "k"}, httpCfg)
	if err != nil {
		t.Fatal(err)
	}
	if c.Name() != "openai" {
		t.Errorf("got %s, want openai", c.Name())
	}

	c, err = NewClassifier(model.ClassifierConfig{Provider: "ollama", Model: "llama3.1:8b"}, httpCfg)
	if err != nil {
		t.Fatal(err)
	}
	if c.Name() != "ollama" {
		t.Errorf("got %s, want ollama", c.Name())
	}

	if _, err := NewClassifier(model.ClassifierConfig{Provider: "palm"}, httpCfg); err == nil {
		t.Error("expected error for unknown provider")
	}
}
