package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-TruckQueueService/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, повторите позже"

const (
	HeaderRealIP = "X-Real-IP"

	DefaultVisitorTTL    = 10 * time.Minute
	DefaultSweepInterval = time.Minute
)

// RateLimiter ограничение частоты запросов по IP клиента
type RateLimiter struct {
	mu               sync.Mutex
	limiters         map[string]*visitor
	rps              rate.Limit
	burst            int
	ttl              time.Duration
	trustProxyHeader bool
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter создает ограничитель: rps запросов в секунду с запасом burst
// Клиент определяется по адресу соединения; X-Real-IP учитывается только при trustProxyHeader,
// то есть когда сервис стоит за своим reverse proxy, который этот заголовок перезаписывает
func NewRateLimiter(rps float64, burst int, trustProxyHeader bool) *RateLimiter {
	return &RateLimiter{
		limiters:         make(map[string]*visitor),
		rps:              rate.Limit(rps),
		burst:            burst,
		ttl:              DefaultVisitorTTL,
		trustProxyHeader: trustProxyHeader,
	}
}

// Middleware отвечает 429, если клиент превысил лимит
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(rl.clientIP(r), time.Now()) {
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RunSweeper периодически удаляет неактивных клиентов до закрытия stopCh
func (rl *RateLimiter) RunSweeper(interval time.Duration, stopCh <-chan struct{}) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case now := <-ticker.C:
			rl.sweep(now)
		}
	}
}

func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.limiters[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.limiters[ip] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, v := range rl.limiters {
		if now.Sub(v.lastSeen) > rl.ttl {
			delete(rl.limiters, ip)
		}
	}
}

func (rl *RateLimiter) visitors() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) clientIP(r *http.Request) string {
	if rl.trustProxyHeader {
		if real := strings.TrimSpace(r.Header.Get(HeaderRealIP)); real != "" {
			return real
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
