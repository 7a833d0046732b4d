package app

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

const (
	limiterStaleAfter   = 3 * time.Minute
	limiterCleanupEvery = time.Minute
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *Application) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := app.logger.With(
			"requestId", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"uri", r.URL.RequestURI(),
		)

		next.ServeHTTP(w, app.contextSetLogger(r, logger))
	})
}

func (app *Application) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !app.limiter.enabled {
			next.ServeHTTP(w, r)
			return
		}

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !app.limiter.allow(ip, time.Now()) {
			app.contextGetLogger(r).Warn("rate limit exceeded", "ip", ip)
			app.rateLimitExceededResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter keeps one token bucket per client address. Buckets not used
// for limiterStaleAfter are dropped while serving later requests.
type ipRateLimiter struct {
	enabled bool
	rps     rate.Limit
	burst   int

	mu          sync.Mutex
	clients     map[string]*client
	lastCleanup time.Time
}

func newIPRateLimiter(cfg LimiterConfig) *ipRateLimiter {
	return &ipRateLimiter{
		enabled: cfg.Enabled,
		rps:     rate.Limit(cfg.RPS),
		burst:   cfg.Burst,
		clients: make(map[string]*client),
	}
}

func (l *ipRateLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastCleanup) > limiterCleanupEvery {
		for key, c := range l.clients {
			if now.Sub(c.lastSeen) > limiterStaleAfter {
				delete(l.clients, key)
			}
		}

		l.lastCleanup = now
	}

	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = c
	}

	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}
