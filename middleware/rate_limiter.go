package middleware

import (
	"net/http"
	"sync"
	"time"

	"facestudio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// rateLimiterStore holds a map of IP addresses to their rate limiters.
type rateLimiterStore struct {
	perMinute int
	burst     int
	idleAfter time.Duration

	mu       sync.Mutex
	limiters map[string]*visitor
	lastGC   time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRateLimiterStore(perMinute, burst int) *rateLimiterStore {
	if perMinute <= 0 {
		perMinute = 1
	}
	if burst <= 0 {
		burst = perMinute
	}
	return &rateLimiterStore{
		perMinute: perMinute,
		burst:     burst,
		idleAfter: 10 * time.Minute,
		limiters:  make(map[string]*visitor),
	}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *rateLimiterStore) getLimiter(ip string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastGC) > s.idleAfter {
		for key, v := range s.limiters {
			if now.Sub(v.lastSeen) > s.idleAfter {
				delete(s.limiters, key)
			}
		}
		s.lastGC = now
	}

	v, exists := s.limiters[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMinute)), s.burst)}
		s.limiters[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

func (s *rateLimiterStore) handler(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// ClientIP only honours forwarding headers from the engine's trusted proxies.
		ip := c.ClientIP()
		if !s.getLimiter(ip, time.Now()).Allow() {
			utils.GetLogger().Warn("Rate limit exceeded",
				zap.String("ip", ip),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": message})
			return
		}
		c.Next()
	}
}

// RateLimitMiddleware limits requests per IP address across the whole API.
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	return newRateLimiterStore(perMinute, perMinute).handler("Rate limit exceeded. Try again later.")
}

// FormRateLimitMiddleware guards the public contact and voucher forms. The
// bucket starts full so a visitor can send perMinute forms before waiting.
func FormRateLimitMiddleware(perMinute int) gin.HandlerFunc {
	return newRateLimiterStore(perMinute, perMinute).handler("Too many submissions. Please wait a minute and try again.")
}
