package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_Limit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	h := rl.Limit(2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/report", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if got := do("10.0.0.1:1111"); got != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", got)
	}
	// Same client, different ephemeral port: same bucket.
	if got := do("10.0.0.1:2222"); got != http.StatusOK {
		t.Fatalf("second request: expected 200, got %d", got)
	}
	if got := do("10.0.0.1:3333"); got != http.StatusTooManyRequests {
		t.Fatalf("third request: expected 429, got %d", got)
	}

	// Another client has its own bucket.
	if got := do("10.0.0.2:1111"); got != http.StatusOK {
		t.Fatalf("other client: expected 200, got %d", got)
	}
}

func TestRateLimiter_RetryAfterHeader(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	h := rl.Limit(1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "/report", nil)
	req.RemoteAddr = "10.0.0.9:1111"

	h.ServeHTTP(httptest.NewRecorder(), req)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}
