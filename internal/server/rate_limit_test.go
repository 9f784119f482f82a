package server

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterRefill(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 2, Burst: 2})
	defer rl.Stop()

	now := time.Unix(1_700_000_000, 0)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("burst should allow two requests")
	}
	if rl.Allow("a") {
		t.Fatal("third request should be rejected")
	}
	if !rl.Allow("b") {
		t.Fatal("clients have separate buckets")
	}

	now = now.Add(500 * time.Millisecond)
	if !rl.Allow("a") {
		t.Fatal("half a second at 2/s refills one token")
	}
	if rl.Allow("a") {
		t.Fatal("only one token should have refilled")
	}

	now = now.Add(time.Hour)
	for i := range 2 {
		if !rl.Allow("a") {
			t.Fatalf("request %d after idle period rejected", i)
		}
	}
	if rl.Allow("a") {
		t.Fatal("refill must be capped at the burst size")
	}
}

func TestRateLimiterStopIsIdempotent(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimiterConfig{})
	rl.Stop()
	rl.Stop()
}

func TestRetryAfter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		rate float64
		want int
	}{
		{rate: 10, want: 1},
		{rate: 1, want: 1},
		{rate: 0.5, want: 2},
		{rate: 0.25, want: 4},
	}
	for _, tt := range tests {
		rl := &RateLimiter{rate: tt.rate}
		if got := rl.retryAfter(); got != tt.want {
			t.Errorf("retryAfter at %v/s = %d, want %d", tt.rate, got, tt.want)
		}
	}
}

func TestGetClientIP(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		want    string
	}{
		{name: "remote addr", remote: "10.0.0.1:5000", want: "10.0.0.1"},
		{name: "ipv6 remote", remote: "[::1]:5000", want: "::1"},
		{name: "forwarded for", remote: "10.0.0.1:5000", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"}, want: "203.0.113.7"},
		{name: "real ip", remote: "10.0.0.1:5000", headers: map[string]string{"X-Real-IP": "198.51.100.4"}, want: "198.51.100.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest("GET", "/health", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := getClientIP(r); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripPortAndFirstIP(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]string{
		"127.0.0.1:80": "127.0.0.1",
		"127.0.0.1":    "127.0.0.1",
		"[::1]:443":    "::1",
	} {
		if got := stripPort(in); got != want {
			t.Errorf("stripPort(%q) = %q, want %q", in, got, want)
		}
	}
	if got := extractFirstIP(" 1.2.3.4 ,5.6.7.8"); got != "1.2.3.4" {
		t.Errorf("extractFirstIP = %q", got)
	}
}
