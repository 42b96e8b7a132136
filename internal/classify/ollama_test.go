package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/creedharan/sourcescore/internal/model"
)

func TestOllamaClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Stream {
			t.Error("streaming should be disabled")
		}
		_ = json.NewEncoder(w).Encode(ollamaResponse{
			Model:    req.Model,
			Response: validJSON,
			Done:     true,
		})
	}))
	defer srv.Close()

	c, err := NewOllamaClassifier(model.ClassifierConfig{
		BaseURL: srv.URL,
		Model:   "llama3.1:8b",
	}, model.HTTPConfig{})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := c.Classify(context.Background(), testRequest())
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].Name != "Anne Marie Moriarty" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestOllamaClassifyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(ollamaError{Error: "model not loaded"})
	}))
	defer srv.Close()

	c, err := NewOllamaClassifier(model.ClassifierConfig{BaseURL: srv.URL, Model: "llama3.1:8b"}, model.HTTPConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Classify(context.Background(), testRequest()); err == nil {
		t.Error("expected error from 500 response")
	}
}

func TestNewOllamaClassifierRequiresModel(t *testing.T) {
	if _, err := NewOllamaClassifier(model.ClassifierConfig{}, model.HTTPConfig{}); err == nil {
		t.Error("expected error without model name")
	}
}
