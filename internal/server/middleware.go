package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/pdrpinto/pathtrace/internal/metrics"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"

	// maxLimiters bounds the number of tracked client IPs.
	maxLimiters = 10_000
)

// requestID assigns a fresh server-side id to every request.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		if clientID := c.GetHeader(requestIDHeader); clientID != "" {
			c.Set("client_request_id", clientID)
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if rid := c.GetString(requestIDKey); rid != "" {
			fields["request_id"] = rid
		}
		log.WithFields(fields).Info("request")
	}
}

// prometheusMiddleware records HTTP request duration and count.
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath() // route pattern keeps label cardinality bounded
		if path == "" {
			path = "unknown"
		}
		metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// rateLimiter keeps one token bucket per client IP.
type rateLimiter struct {
	limiters *lru.Cache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

func newRateLimiter(perSecond float64, burst int) *rateLimiter {
	// size is a positive constant, New cannot fail
	limiters, _ := lru.New[string, *rate.Limiter](maxLimiters)
	return &rateLimiter{limiters: limiters, limit: rate.Limit(perSecond), burst: burst}
}

func (rl *rateLimiter) allow(ip string) bool {
	limiter, ok := rl.limiters.Get(ip)
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		if previous, loaded, _ := rl.limiters.PeekOrAdd(ip, limiter); loaded {
			limiter = previous
		}
	}
	return limiter.Allow()
}

func (rl *rateLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			respondError(c, http.StatusTooManyRequests, ErrCodeRateLimited, "rate limit exceeded")
			return
		}
		c.Next()
	}
}
