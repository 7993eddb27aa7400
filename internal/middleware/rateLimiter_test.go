package middleware

import (
	"testing"

	"golang.org/x/time/rate"
)

func TestIPRateLimiter_PerIPIsolation(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)

	if !limiter.GetLimiter("10.0.0.1").Allow() {
		t.Fatal("first request from a fresh ip must pass")
	}
	if limiter.GetLimiter("10.0.0.1").Allow() {
		t.Error("burst of 1 should reject the second immediate request")
	}
	// a different ip gets its own bucket
	if !limiter.GetLimiter("10.0.0.2").Allow() {
		t.Error("another ip must not share the exhausted bucket")
	}
}

func TestIPRateLimiter_ReusesLimiterPerIP(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)

	if limiter.GetLimiter("10.0.0.1") != limiter.GetLimiter("10.0.0.1") {
		t.Error("the same ip should map to one limiter instance")
	}
}
