package middleware

import (
	"net/http"
	"sync"
	"time"

	"topreparateurs/pkg"
	"topreparateurs/pkg/logger"

	"github.com/gin-gonic/gin"
)

var errRateLimited = pkg.NewDomainErrorSimple("RATE_LIMITED", "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// RateLimiter is a token bucket per client IP: limit requests per window, refilled continuously.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64
	capacity float64
	ttl      time.Duration
	now      func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     float64(limit) / window.Seconds(),
		capacity: float64(limit),
		ttl:      2 * window,
		now:      time.Now,
	}
}

// Allow takes one token from key's bucket.
func (l *RateLimiter) Allow(key string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		l.evict(now)
		b = &bucket{tokens: l.capacity, lastRefill: now}
		l.buckets[key] = b
	}
	b.tokens = min(l.capacity, b.tokens+now.Sub(b.lastRefill).Seconds()*l.rate)
	b.lastRefill = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// evict drops buckets idle for longer than ttl. Caller holds mu.
func (l *RateLimiter) evict(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.lastRefill) > l.ttl {
			delete(l.buckets, k)
		}
	}
}

// RateLimit rejects with 429 once a client IP runs out of tokens.
// A non-positive limit disables it.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limiter.capacity <= 0 {
			c.Next()
			return
		}
		ip := c.ClientIP()
		if !limiter.Allow(ip) {
			logger.Warn(c.Request.Context(), "[http][ratelimit] rate limit exceeded", "client_ip", ip)
			c.AbortWithStatusJSON(errRateLimited.HTTPStatus, errRateLimited.ToHTTPError())
			return
		}
		c.Next()
	}
}
