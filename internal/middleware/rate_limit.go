package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/config"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	lastGC   time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(cfg.RequestsPerSecond),
		burst:    cfg.BurstSize,
		lastGC:   time.Now(),
	}
}

func (r *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

func (r *RateLimiter) allow(ip string) bool {
	now := time.Now()

	r.mu.Lock()
	v, ok := r.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(r.rps, r.burst)}
		r.visitors[ip] = v
	}
	v.lastSeen = now

	if now.Sub(r.lastGC) > limiterIdleTTL {
		for k, other := range r.visitors {
			if now.Sub(other.lastSeen) > limiterIdleTTL {
				delete(r.visitors, k)
			}
		}
		r.lastGC = now
	}
	r.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}
