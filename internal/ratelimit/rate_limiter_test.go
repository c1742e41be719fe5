package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMiddleware(t *testing.T) {
	limiter := New(0, 2)

	handler := limiter.Middleware(ClientIP)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	expected := []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}

	for idx, e := range expected {
		req := httptest.NewRequest(http.MethodPost, "/asistenciaV2r/login", nil)
		req.RemoteAddr = "10.0.0.1:5000"

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if g := w.Code; e != g {
			t.Errorf("request #%d: expected '%v', got '%v'", idx, e, g)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/asistenciaV2r/login", nil)
	req.RemoteAddr = "10.0.0.2:5000"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if e, g := http.StatusNoContent, w.Code; e != g {
		t.Errorf("other client: expected '%v', got '%v'", e, g)
	}
}

func TestMiddlewareInvalidKey(t *testing.T) {
	limiter := New(1, 1)

	handler := limiter.Middleware(ClientIP)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/asistenciaV2r/login", nil)
	req.RemoteAddr = "invalid"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if e, g := http.StatusInternalServerError, w.Code; e != g {
		t.Errorf("w.Code: expected '%v', got '%v'", e, g)
	}
}

func TestPrune(t *testing.T) {
	type testCase struct {
		Elapsed  time.Duration
		Idle     time.Duration
		Seen     []string
		Pruned   int
		Remained []string
	}

	testCases := []testCase{
		{Elapsed: time.Minute, Idle: 10 * time.Minute, Pruned: 0, Remained: []string{"10.0.0.1", "10.0.0.2"}},
		{Elapsed: 11 * time.Minute, Idle: 10 * time.Minute, Pruned: 2},
		{Elapsed: 11 * time.Minute, Idle: 10 * time.Minute, Seen: []string{"10.0.0.2"}, Pruned: 1, Remained: []string{"10.0.0.2"}},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			clock := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

			limiter := New(0, 1)
			limiter.now = func() time.Time { return clock }

			limiter.Allow("10.0.0.1")
			limiter.Allow("10.0.0.2")

			clock = clock.Add(tc.Elapsed)

			for _, key := range tc.Seen {
				limiter.Allow(key)
			}

			if e, g := tc.Pruned, limiter.Prune(tc.Idle); e != g {
				t.Errorf("limiter.Prune(): expected '%v', got '%v'", e, g)
			}

			remained := 0
			limiter.keys.Range(func(key string, v *visitor) bool {
				remained++
				return true
			})

			if e, g := len(tc.Remained), remained; e != g {
				t.Errorf("remained: expected '%v', got '%v'", e, g)
			}

			for _, key := range tc.Remained {
				if _, exists := limiter.keys.Load(key); !exists {
					t.Errorf("key '%s' should not be pruned", key)
				}
			}
		})
	}
}

func TestPrunedKeyStartsFresh(t *testing.T) {
	clock := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	limiter := New(0, 1)
	limiter.now = func() time.Time { return clock }

	if !limiter.Allow("10.0.0.1") {
		t.Fatalf("first attempt should be allowed")
	}

	if limiter.Allow("10.0.0.1") {
		t.Fatalf("second attempt should be limited")
	}

	clock = clock.Add(time.Hour)
	limiter.Prune(10 * time.Minute)

	if !limiter.Allow("10.0.0.1") {
		t.Errorf("attempt after pruning should be allowed")
	}
}

func TestPruneEvery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := New(1, 1)
	limiter.Allow("10.0.0.1")

	limiter.PruneEvery(ctx, 10*time.Millisecond, time.Nanosecond)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, exists := limiter.keys.Load("10.0.0.1"); !exists {
			return
		}

		time.Sleep(5 * time.Millisecond)
	}

	t.Errorf("key should have been pruned")
}
