package worker

import (
	"context"
	"testing"
)

func TestLimiterWaitAcrossHosts(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/news/a"); err != nil {
		t.Fatalf("wait: %v", err)
	}
	// A different host draws from its own bucket.
	if err := limiter.Wait(ctx, "http://other.example.net/news/b"); err != nil {
		t.Fatalf("wait on second host: %v", err)
	}
}

func TestLimiterExhaustsBurstPerHost(t *testing.T) {
	limiter := NewLimiter(0.1, 1)

	if !limiter.Allow("http://example.com/a") {
		t.Fatal("first fetch should be allowed")
	}
	if limiter.Allow("http://example.com/b") {
		t.Error("second fetch to same host should be throttled")
	}
	if !limiter.Allow("http://other.example.net/a") {
		t.Error("other host should be unaffected")
	}
}

func TestLimiterSetHostRate(t *testing.T) {
	limiter := NewLimiter(100, 10)
	limiter.SetHostRate("slow.example.com", 0.1, 1)

	if !limiter.Allow("http://slow.example.com/a") {
		t.Fatal("burst of one should pass")
	}
	if limiter.Allow("http://slow.example.com/b") {
		t.Error("override rate should throttle the second fetch")
	}
	if !limiter.Allow("http://fast.example.com/a") {
		t.Error("default rate should still apply elsewhere")
	}
}

func TestLimiterInvalidURL(t *testing.T) {
	limiter := NewLimiter(1, 1)
	if limiter.Allow("::invalid") {
		t.Error("unparseable URL should not be allowed")
	}
	if err := limiter.Wait(context.Background(), "::invalid"); err == nil {
		t.Error("expected error for unparseable URL")
	}
}

func TestLimiterNonPositiveBurst(t *testing.T) {
	limiter := NewLimiter(10, 0)
	if limiter.burst != 1 {
		t.Errorf("burst = %d, want floor of 1", limiter.burst)
	}
}
