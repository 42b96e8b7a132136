package classify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/creedharan/sourcescore/internal/cache"
)

type countingClassifier struct {
	calls int
	resp  *Response
	err   error
}

func (c *countingClassifier) Name() string                         { return "counting" }
func (c *countingClassifier) IsAvailable(ctx context.Context) bool { return true }
func (c *countingClassifier) Classify(ctx context.Context, req Request) (*Response, error) {
	c.calls++
	return c.resp, c.err
}

func TestCachedClassifierHit(t *testing.T) {
	inner := &countingClassifier{resp: &Response{
		Sources: []SourceJudgment{{Name: "A B", Gender: "unknown", Role: "impact", Provenance: "original", Attribution: "full"}},
	}}
	cc := NewCachedClassifier(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	req := testRequest()
	first, err := cc.Classify(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := cc.Classify(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if inner.calls != 1 {
		t.Errorf("provider called %d times, want 1", inner.calls)
	}
	if len(first.Sources) != len(second.Sources) || first.Sources[0] != second.Sources[0] {
		t.Error("cached response differs from original")
	}
}

func TestCachedClassifierMissOnDifferentRequest(t *testing.T) {
	inner := &countingClassifier{resp: &Response{}}
	cc := NewCachedClassifier(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	if _, err := cc.Classify(context.Background(), Request{ArticleText: "one"}); err != nil {
		t.Fatal(err)
	}
	if _, err := cc.Classify(context.Background(), Request{ArticleText: "two"}); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("provider called %d times, want 2", inner.calls)
	}
}

func TestCachedClassifierErrorNotCached(t *testing.T) {
	inner := &countingClassifier{err: errors.New("transient")}
	cc := NewCachedClassifier(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	req := testRequest()
	if _, err := cc.Classify(context.Background(), req); err == nil {
		t.Fatal("expected error")
	}
	if _, err := cc.Classify(context.Background(), req); err == nil {
		t.Fatal("expected error")
	}
	if inner.calls != 2 {
		t.Errorf("error was cached: %d calls, want 2", inner.calls)
	}
}
