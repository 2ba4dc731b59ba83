package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// LoginRateLimiter throttles credential endpoints per client IP. Limiters
// for idle clients are dropped after an hour so the map does not grow
// without bound.
type LoginRateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*client
	limit    rate.Limit
	burst    int
	lifetime time.Duration
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLoginRateLimiter(perMinute, burst int) *LoginRateLimiter {
	return &LoginRateLimiter{
		clients:  make(map[string]*client),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		lifetime: time.Hour,
	}
}

func (l *LoginRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter.Allow()
}

// Cleanup drops limiters for clients not seen within the lifetime.
func (l *LoginRateLimiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) > l.lifetime {
			delete(l.clients, ip)
		}
	}
}

// Middleware rejects over-limit requests with 429.
func (l *LoginRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, slow down"})
			c.Abort()
			return
		}
		c.Next()
	}
}
