package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MrSnakeDoc/scape/internal/utils"
)

type RateLimitConfig struct {
	Burst             int
	RefillPerIPPerMin int
	MaxEntries        int
	SweepInterval     time.Duration
	IdleTTL           time.Duration
	TrustProxy        bool // resolve the client IP from proxy headers
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// keyedLimiter holds one token bucket per client IP and forgets idle ones.
type keyedLimiter struct {
	cfg       RateLimitConfig
	limit     rate.Limit
	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

func newKeyedLimiter(cfg RateLimitConfig) *keyedLimiter {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	if cfg.RefillPerIPPerMin < 1 {
		cfg.RefillPerIPPerMin = 1
	}
	return &keyedLimiter{
		cfg:       cfg,
		limit:     rate.Limit(float64(cfg.RefillPerIPPerMin) / 60.0),
		clients:   make(map[string]*client, 1024),
		lastSweep: time.Now(),
	}
}

func (l *keyedLimiter) get(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.cfg.SweepInterval ||
		(l.cfg.MaxEntries > 0 && len(l.clients) >= l.cfg.MaxEntries) {
		l.sweepLocked(now)
	}

	c := l.clients[key]
	if c == nil {
		c = &client{limiter: rate.NewLimiter(l.limit, l.cfg.Burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter
}

func (l *keyedLimiter) sweepLocked(now time.Time) {
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) > l.cfg.IdleTTL {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

// allow takes one token for key. When none is left it reports how long to
// wait for the next one.
func (l *keyedLimiter) allow(key string, now time.Time) (ok bool, remaining int, retryAfter time.Duration) {
	lim := l.get(key, now)
	if lim.AllowN(now, 1) {
		return true, int(math.Floor(lim.TokensAt(now))), 0
	}

	r := lim.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	r.CancelAt(now)
	return false, 0, delay
}

// RateLimit limits requests per client IP with a token bucket.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	l := newKeyedLimiter(cfg)
	limitStr := strconv.Itoa(l.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := utils.ClientIP(r, l.cfg.TrustProxy)

			ok, remaining, retry := l.allow(key, time.Now())
			w.Header().Set("X-RateLimit-Limit", limitStr)
			if !ok {
				sec := int(math.Ceil(retry.Seconds()))
				if sec < 1 {
					sec = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(sec))
				w.Header().Set("X-RateLimit-Remaining", "0")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(remaining, 0)))
			next.ServeHTTP(w, r)
		})
	}
}
