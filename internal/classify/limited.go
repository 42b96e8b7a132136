package classify

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedClassifier throttles outbound classifier calls. It sits
// under the cache wrapper so cache hits never consume rate budget.
type RateLimitedClassifier struct {
	inner   Classifier
	limiter *rate.Limiter
}

// NewRateLimitedClassifier wraps inner with a token-bucket limiter.
// A non-positive rps disables throttling.
func NewRateLimitedClassifier(inner Classifier, rps float64, burst int) *RateLimitedClassifier {
	var limiter *rate.Limiter
	if rps > 0 {
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return &RateLimitedClassifier{inner: inner, limiter: limiter}
}

// Name returns the wrapped provider's name.
func (c *RateLimitedClassifier) Name() string {
	return c.inner.Name()
}

// IsAvailable defers to the wrapped provider.
func (c *RateLimitedClassifier) IsAvailable(ctx context.Context) bool {
	return c.inner.IsAvailable(ctx)
}

// Classify waits for rate budget, then calls through. A context that
// expires while waiting surfaces as a timeout, same as a slow provider.
func (c *RateLimitedClassifier) Classify(ctx context.Context, req Request) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("classifier rate limit: %w", err)
		}
	}
	return c.inner.Classify(ctx, req)
}
