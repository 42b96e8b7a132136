package classify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/creedharan/sourcescore/internal/model"
)

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		resp := map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": time.Now().Unix(),
			"model":   "test-model",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]any{"role": "assistant", "content": content},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testRequest() Request {
	return Request{
		ArticleText: "Anne Marie Moriarty, principal of the college, said staff can \"barely survive.\"",
		Category:    "News",
		Quotes: []QuoteHint{
			{Candidate: "Anne Marie Moriarty", Quote: "barely survive."},
		},
	}
}

func TestOpenAIClassify(t *testing.T) {
	srv := chatServer(t, validJSON)
	defer srv.Close()

	c, err := NewOpenAIClassifier(model.ClassifierConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "test-model",
	})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := c.Classify(context.Background(), testRequest())
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].Attribution != "full" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestOpenAIClassifyFencedContent(t *testing.T) {
	srv := chatServer(t, "```json\n"+validJSON+"\n```")
	defer srv.Close()

	c, err := NewOpenAIClassifier(model.ClassifierConfig{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Classify(context.Background(), testRequest()); err != nil {
		t.Fatalf("fenced content should parse: %v", err)
	}
}

func TestOpenAIClassifyMalformed(t *testing.T) {
	srv := chatServer(t, "I cannot classify this article.")
	defer srv.Close()

	c, err := NewOpenAIClassifier(model.ClassifierConfig{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Classify(context.Background(), testRequest()); !errors.Is(err, model.ErrClassifierMalformed) {
		t.Errorf("err = %v, want ErrClassifierMalformed", err)
	}
}

func TestOpenAIClassifyTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c, err := NewOpenAIClassifier(model.ClassifierConfig{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := c.Classify(ctx, testRequest()); !errors.Is(err, model.ErrClassifierTimeout) {
		t.Errorf("err = %v, want ErrClassifierTimeout", err)
	}
}

func TestNewOpenAIClassifierRequiresKey(t *testing.T) {
	if _, err := NewOpenAIClassifier(model.ClassifierConfig{}); err == nil {
		t.Error("expected error without API key")
	}
}
