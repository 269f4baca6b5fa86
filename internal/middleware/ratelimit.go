package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ServiceRateLimit applies a shared token-bucket limit to internal
// service-to-service calls. All internal callers share one bucket.
func ServiceRateLimit(requestsPerSecond float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "service rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
