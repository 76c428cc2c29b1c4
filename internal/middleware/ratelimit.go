// ratelimit.go implements per-client-IP rate limiting using a token bucket.
//
// How token bucket works:
// - Each client IP gets a "bucket" with N tokens (the hourly limit)
// - Each request consumes 1 token
// - Tokens refill at a steady rate (limit tokens per hour)
// - If the bucket is empty, the request is rejected with 429 Too Many Requests
//
// Every OCR conversion costs real API credits upstream, so a runaway client
// hammering /convert is the main thing this guards against.
package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aajarad/mistral-ocr/internal/models"
)

// RateLimiter tracks request rates per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int // requests per hour
}

// bucket tracks the token state for a single client.
type bucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// allowResult contains the result of a rate limit check,
// including header information for the response.
type allowResult struct {
	allowed   bool
	remaining float64
	limit     float64
}

// NewRateLimiter creates a rate limiter allowing limit requests per hour
// per client IP.
func NewRateLimiter(limit int) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
	}

	// Start background cleanup goroutine
	go rl.cleanup()

	return rl
}

// RateLimit returns Gin middleware that enforces the per-IP rate limit.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		result := rl.allow(c.ClientIP())
		if !result.allowed {
			// Add headers even for rejected requests so clients know their limits
			c.Header("X-RateLimit-Limit", formatFloat(result.limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error:   "rate_limit_exceeded",
				Message: "Rate limit exceeded. Try again later.",
				Code:    http.StatusTooManyRequests,
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", formatFloat(result.limit))
		c.Header("X-RateLimit-Remaining", formatFloat(result.remaining))

		c.Next()
	}
}

// allow checks if a request should be allowed, consuming a token if so.
// Returns the result atomically to avoid race conditions between checking
// the limit and reading the bucket for headers.
func (rl *RateLimiter) allow(clientIP string) allowResult {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[clientIP]
	if !exists {
		b = &bucket{
			tokens:     float64(rl.limit),
			maxTokens:  float64(rl.limit),
			refillRate: float64(rl.limit) / 3600.0, // tokens per second (rate per hour)
			lastRefill: time.Now(),
		}
		rl.buckets[clientIP] = b
	}

	// Refill tokens based on elapsed time
	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * b.refillRate
	if b.tokens > b.maxTokens {
		b.tokens = b.maxTokens
	}
	b.lastRefill = now

	if b.tokens < 1.0 {
		return allowResult{
			allowed:   false,
			remaining: 0,
			limit:     b.maxTokens,
		}
	}

	// Consume a token
	b.tokens--
	return allowResult{
		allowed:   true,
		remaining: b.tokens,
		limit:     b.maxTokens,
	}
}

// cleanup periodically removes stale buckets to prevent memory leaks.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, b := range rl.buckets {
			// Remove buckets that haven't been used in over an hour
			if now.Sub(b.lastRefill) > time.Hour {
				delete(rl.buckets, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// formatFloat converts a float to a string for headers.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.0f", f)
}
