/*
Package limiter provides per-IP request rate limiting for HTTP endpoints.

It uses the token bucket algorithm (rate.Limiter) to bound how often a single
client IP may hit an endpoint, with a background sweep that removes idle
limiters to keep the map from growing unbounded. This is connection-level
protection, separate from the hub's per-identity message limiter.
*/
package limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"kchat/internal/pkg/errs"
	"kchat/internal/pkg/logx"
	"kchat/internal/pkg/resp"

	"golang.org/x/time/rate"
)

// IPRateLimiter implements a rate limiter keyed by client IP address.
type IPRateLimiter struct {
	// mu protects concurrent access to the limits map.
	mu *sync.RWMutex

	// limits maps client IP address to its *rate.Limiter instance.
	limits map[string]*rate.Limiter

	// r is the allowed event rate per second.
	r rate.Limit

	// b is the burst size (token bucket capacity).
	b int
}

// NewIPRateLimiter creates an IPRateLimiter with rate r and burst b and
// starts the background cleanup goroutine.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		mu:     &sync.RWMutex{},
		limits: make(map[string]*rate.Limiter),
		r:      r,
		b:      b,
	}

	go i.cleanUpVisitors()

	return i
}

// GetLimiter retrieves the rate limiter for the given IP address, creating
// one if absent. Double-checked locking keeps creation concurrent-safe.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.RLock()
	limiter, exists := i.limits[ip]
	i.mu.RUnlock()

	if !exists {
		i.mu.Lock()
		limiter, exists = i.limits[ip]
		if !exists {
			limiter = rate.NewLimiter(i.r, i.b)
			i.limits[ip] = limiter
		}
		i.mu.Unlock()
	}

	return limiter
}

// cleanUpVisitors periodically removes limiters whose bucket has refilled
// completely, which means the IP has been idle for at least a full window.
func (i *IPRateLimiter) cleanUpVisitors() {
	ticker := time.NewTicker(3 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		i.mu.Lock()
		count := 0
		for ip, limiter := range i.limits {
			if limiter.TokensAt(time.Now()) >= float64(limiter.Burst()) {
				delete(i.limits, ip)
				count++
			}
		}
		i.mu.Unlock()
		logx.Info("Rate limiter cleanup finished.", "removed", count, "remaining", len(i.limits))
	}
}

// ClientIP extracts the bucketing key from the request's remote address.
func ClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	if ip == "" {
		ip = "unknown_ip"
	}

	return ip
}

// Middleware returns an HTTP middleware that rejects requests exceeding the
// per-IP limit with a 429 Too Many Requests response.
func (i *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := i.GetLimiter(ClientIP(r))

		if !limiter.Allow() {
			rateLimitErr := errs.NewError(errs.ErrRateLimitExceeded)
			resp.RespondError(w, r, rateLimitErr)
			return
		}

		next.ServeHTTP(w, r)
	})
}
