package middleware

import (
	"testing"
	"time"
)

func TestIPRateLimiter_EnforcesLimit(t *testing.T) {
	rl := NewIPRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request over the limit should be denied")
	}
}

func TestIPRateLimiter_TracksIPsIndependently(t *testing.T) {
	rl := NewIPRateLimiter(1, time.Minute)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first IP should be allowed")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("second IP should have its own budget")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("first IP should be exhausted")
	}
}

func TestIPRateLimiter_WindowExpiry(t *testing.T) {
	rl := NewIPRateLimiter(1, 20*time.Millisecond)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("second request inside the window should be denied")
	}

	time.Sleep(30 * time.Millisecond)

	if !rl.Allow("10.0.0.1") {
		t.Error("request after the window should be allowed again")
	}
}
