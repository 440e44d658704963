package ratelimit_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CivicAgenda/CA-Backend/internal/ratelimit"
)

// TestAllow_SixthRejected verifies the suggestion-posting shape: five
// requests from one key pass, the sixth inside the window does not.
func TestAllow_SixthRejected(t *testing.T) {
	l := ratelimit.New(10*time.Minute, 5)

	for i := 1; i <= 5; i++ {
		if !l.Allow("203.0.113.9") {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if l.Allow("203.0.113.9") {
		t.Error("sixth request within the window should be rejected")
	}
}

// TestAllow_WindowHoldsAcrossTime verifies the hard sliding window: once the
// limit is spent, later requests stay rejected until the oldest event ages
// out of the window. A smoothly refilling bucket would wrongly admit a
// request partway through.
func TestAllow_WindowHoldsAcrossTime(t *testing.T) {
	const window = 400 * time.Millisecond
	l := ratelimit.New(window, 2)

	if !l.Allow("k") || !l.Allow("k") {
		t.Fatal("first two requests should be allowed")
	}
	if l.Allow("k") {
		t.Fatal("third request should be rejected")
	}

	// Partway through the window: still full.
	time.Sleep(window / 4)
	if l.Allow("k") {
		t.Error("request partway through the window should still be rejected")
	}

	// Past the window: both original events have aged out.
	time.Sleep(window)
	if !l.Allow("k") {
		t.Error("request after the window should be allowed")
	}
}

// TestAllow_KeysIndependent verifies one client exhausting its window does
// not affect another.
func TestAllow_KeysIndependent(t *testing.T) {
	l := ratelimit.New(10*time.Minute, 1)

	if !l.Allow("a") {
		t.Fatal("first request from a should be allowed")
	}
	if l.Allow("a") {
		t.Error("second request from a should be rejected")
	}
	if !l.Allow("b") {
		t.Error("first request from b should be allowed")
	}
}

// TestRetryAfter verifies a full key reports a positive wait bounded by the
// window and an idle key reports zero.
func TestRetryAfter(t *testing.T) {
	const window = 10 * time.Minute
	l := ratelimit.New(window, 1)

	if got := l.RetryAfter("idle"); got != 0 {
		t.Errorf("idle key: expected 0, got %v", got)
	}

	l.Allow("busy")
	got := l.RetryAfter("busy")
	if got <= 0 || got > window {
		t.Errorf("full key: expected wait in (0, %v], got %v", window, got)
	}
}

// TestCleanup_DropsIdleKeys verifies keys whose events all aged out are
// evicted and start fresh.
func TestCleanup_DropsIdleKeys(t *testing.T) {
	l := ratelimit.New(50*time.Millisecond, 1)

	if !l.Allow("idle") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("idle") {
		t.Fatal("second request should be rejected")
	}

	time.Sleep(60 * time.Millisecond)
	l.Cleanup()

	if !l.Allow("idle") {
		t.Error("after cleanup the key should start fresh")
	}
}

// TestBucketAllow verifies the token bucket admits a burst, rejects beyond
// it, and keeps keys independent.
func TestBucketAllow(t *testing.T) {
	b := ratelimit.NewBucket(time.Hour, 2)

	if !b.Allow("a") || !b.Allow("a") {
		t.Fatal("burst should be allowed")
	}
	if b.Allow("a") {
		t.Error("request beyond the burst should be rejected")
	}
	if !b.Allow("b") {
		t.Error("first request from b should be allowed")
	}
}

// TestBucketCleanup verifies stale visitors are evicted and get a fresh
// bucket afterwards.
func TestBucketCleanup(t *testing.T) {
	b := ratelimit.NewBucket(time.Hour, 1)

	if !b.Allow("idle") {
		t.Fatal("first request should be allowed")
	}
	if b.Allow("idle") {
		t.Fatal("second request should be rejected")
	}

	b.Cleanup(0) // everything is "older than" zero

	if !b.Allow("idle") {
		t.Error("after cleanup the key should get a fresh bucket")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/suggestions", nil)
	r.RemoteAddr = "192.0.2.4:5050"
	if got := ratelimit.ClientIP(r); got != "192.0.2.4" {
		t.Errorf("RemoteAddr: expected 192.0.2.4, got %q", got)
	}

	r.Header.Set("X-Real-IP", "198.51.100.7")
	if got := ratelimit.ClientIP(r); got != "198.51.100.7" {
		t.Errorf("X-Real-IP: expected 198.51.100.7, got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.1, 10.0.0.1")
	if got := ratelimit.ClientIP(r); got != "203.0.113.1" {
		t.Errorf("X-Forwarded-For: expected first hop, got %q", got)
	}
}
