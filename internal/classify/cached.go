package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/creedharan/sourcescore/internal/cache"
)

// CachedClassifier wraps a Classifier with a response cache. Hits skip
// the external call entirely, which also makes re-runs idempotent: same
// article, same cached judgment, same score.
type CachedClassifier struct {
	inner Classifier
	store cache.Cache
	ttl   time.Duration
}

// NewCachedClassifier wraps inner with the given cache.
func NewCachedClassifier(inner Classifier, store cache.Cache, ttl time.Duration) *CachedClassifier {
	return &CachedClassifier{inner: inner, store: store, ttl: ttl}
}

// Name returns the wrapped provider's name.
func (c *CachedClassifier) Name() string {
	return c.inner.Name()
}

// IsAvailable defers to the wrapped provider.
func (c *CachedClassifier) IsAvailable(ctx context.Context) bool {
	return c.inner.IsAvailable(ctx)
}

// Classify answers from cache when possible. Only validated responses
// are cached; errors are never stored, so a failed article retries the
// external call on the next run.
func (c *CachedClassifier) Classify(ctx context.Context, req Request) (*Response, error) {
	reqBytes, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal classifier request: %w", err)
	}
	key := cache.ResponseKey(reqBytes)

	if data, found := c.store.Get(key); found {
		var resp Response
		if err := json.Unmarshal(data, &resp); err == nil {
			return &resp, nil
		}
		// Corrupt entry; drop it and fall through to the provider.
		_ = c.store.Delete(key)
	}

	resp, err := c.inner.Classify(ctx, req)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(resp); err == nil {
		_ = c.store.Set(key, data, c.ttl)
	}
	return resp, nil
}
