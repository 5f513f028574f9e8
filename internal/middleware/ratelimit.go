package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"clinic-medications/internal/platform/metrics"

	"github.com/juju/ratelimit"
)

// RateLimiter mantiene un token bucket por IP de cliente. chimw.RealIP solo
// reescribe RemoteAddr cuando hay cabeceras de proxy; el puerto se descarta acá.
type RateLimiter struct {
	mu       sync.RWMutex
	clients  map[string]*ratelimit.Bucket
	rate     float64
	capacity int64
}

func NewRateLimiter(rate float64, capacity int64) *RateLimiter {
	return &RateLimiter{
		clients:  make(map[string]*ratelimit.Bucket),
		rate:     rate,
		capacity: capacity,
	}
}

func (rl *RateLimiter) bucket(client string) *ratelimit.Bucket {
	rl.mu.RLock()
	b, ok := rl.clients[client]
	rl.mu.RUnlock()
	if ok {
		return b
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if b, ok = rl.clients[client]; !ok {
		b = ratelimit.NewBucketWithRate(rl.rate, rl.capacity)
		rl.clients[client] = b
		metrics.RateLimiterBuckets.Set(float64(len(rl.clients)))
	}
	return b
}

// Sweep descarta los buckets llenos (clientes inactivos). Lo corre un job periódico.
func (rl *RateLimiter) Sweep() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for client, b := range rl.clients {
		if b.Available() >= b.Capacity() {
			delete(rl.clients, client)
			removed++
		}
	}
	metrics.RateLimiterBuckets.Set(float64(len(rl.clients)))
	return removed
}

func (rl *RateLimiter) Len() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.clients)
}

// tokenCost: exportar arma un xlsx, cuesta más que una lectura.
func tokenCost(r *http.Request) int64 {
	path := r.URL.Path
	switch {
	case path == "/health", path == "/metrics", strings.HasPrefix(path, "/swagger/"):
		return 0
	case path == "/prescriptions/export":
		return 20
	case path == "/prescriptions/preview":
		return 5
	default:
		return 1
	}
}

// clientIP devuelve RemoteAddr sin puerto. Si no trae puerto se usa tal cual.
func clientIP(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	limit := strconv.FormatInt(rl.capacity, 10)
	rate := strconv.FormatFloat(rl.rate, 'f', -1, 64)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cost := tokenCost(r)
		if cost == 0 {
			next.ServeHTTP(w, r)
			return
		}

		b := rl.bucket(clientIP(r.RemoteAddr))
		w.Header().Set("X-RateLimit-Limit", limit)
		w.Header().Set("X-RateLimit-Rate", rate)

		if b.TakeAvailable(cost) < cost {
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", "60")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(b.Available(), 10))
		next.ServeHTTP(w, r)
	})
}
