package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	var got string
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetRecorder(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookings", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	req.Header.Set(HeaderUserName, " gate clerk ")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "gate clerk", got)
}

type observed struct {
	method, route, status string
}

type fakeHTTPMetrics struct {
	mu   sync.Mutex
	seen []observed
}

func (f *fakeHTTPMetrics) ObserveHTTPRequest(method, route, status string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, observed{method, route, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/bookings/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/123", nil))

	require.Len(t, m.seen, 1)
	assert.Equal(t, observed{"GET", "/bookings/{id}", "404"}, m.seen[0])
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2, false)
	now := time.Now()

	assert.True(t, rl.allow("10.0.0.1", now))
	assert.True(t, rl.allow("10.0.0.1", now))
	assert.False(t, rl.allow("10.0.0.1", now))
	assert.True(t, rl.allow("10.0.0.2", now))
	assert.True(t, rl.allow("10.0.0.1", now.Add(time.Second)))
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, false)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRateLimiter_IgnoresRealIPHeaderByDefault(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, false)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	allowed := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		req.Header.Set(HeaderRealIP, fmt.Sprintf("198.51.100.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			allowed++
		}
	}

	assert.Equal(t, 1, allowed)
	assert.Equal(t, 1, rl.visitors())
}

func TestRateLimiter_TrustedProxyHeader(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, true)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(realIP string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:4000" // адрес proxy
		req.Header.Set(HeaderRealIP, realIP)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve("198.51.100.1"))
	assert.Equal(t, http.StatusOK, serve("198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, serve("198.51.100.1"))
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl := NewRateLimiter(1, 1, false)
	now := time.Now()

	rl.allow("10.0.0.1", now)
	rl.allow("10.0.0.2", now.Add(DefaultVisitorTTL))
	require.Equal(t, 2, rl.visitors())

	rl.sweep(now.Add(DefaultVisitorTTL + time.Second))
	assert.Equal(t, 1, rl.visitors())
}

func TestRateLimiter_RunSweeperStops(t *testing.T) {
	rl := NewRateLimiter(1, 1, false)
	stopCh := make(chan struct{})
	done := make(chan struct{})

	go func() {
		rl.RunSweeper(time.Millisecond, stopCh)
		close(done)
	}()
	close(stopCh)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestRequestID(t *testing.T) {
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(HeaderRequestID))
}
