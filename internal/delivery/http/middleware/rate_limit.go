package middleware

import (
	"context"
	"freightzone-backend/config"
	"freightzone-backend/pkg/logger"
	"freightzone-backend/pkg/utils"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	rateLimitCleanupPeriod = time.Minute
	rateLimitClientTTL     = 3 * time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per client IP. Stale clients are dropped
// by a background loop that stops on Shutdown or when ctx is done.
type RateLimiter struct {
	clients       map[string]*client
	mu            sync.Mutex
	limit         rate.Limit
	burst         int
	cleanupPeriod time.Duration
	clientTTL     time.Duration
	exempt        []string
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewRateLimiter builds a limiter from RATE_LIMIT_RPS and RATE_LIMIT_BURST.
// Health and metrics probes are never limited.
func NewRateLimiter(ctx context.Context, cfg *config.Config) *RateLimiter {
	return newRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, rateLimitCleanupPeriod, rateLimitClientTTL)
}

func newRateLimiter(ctx context.Context, limit rate.Limit, burst int, cleanupPeriod, clientTTL time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients:       make(map[string]*client),
		limit:         limit,
		burst:         burst,
		cleanupPeriod: cleanupPeriod,
		clientTTL:     clientTTL,
		exempt:        []string{"/health", "/api/v1/health", "/metrics"},
	}
	rl.ctx, rl.cancel = context.WithCancel(ctx)
	go rl.cleanupLoop()
	return rl
}

// Middleware returns the HTTP middleware handler
func (rl *RateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rl.isExempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ip := getClientIP(r)
			if !rl.getVisitor(ip).Allow() {
				logger.WithContext(r.Context()).Warn().Str("ip", ip).Str("path", r.URL.Path).Msg("Rate limit exceeded")
				w.Header().Set("Retry-After", "1")
				utils.WriteError(w, http.StatusTooManyRequests, "Too many requests, please slow down")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) isExempt(path string) bool {
	for _, p := range rl.exempt {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.clients[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.limit, rl.burst)
		rl.clients[ip] = &client{limiter: limiter, lastSeen: time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.ctx.Done():
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, v := range rl.clients {
		if time.Since(v.lastSeen) > rl.clientTTL {
			delete(rl.clients, ip)
		}
	}
}

// Shutdown gracefully stops the cleanup goroutine
func (rl *RateLimiter) Shutdown() {
	rl.cancel()
}
