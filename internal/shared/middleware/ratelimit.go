package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/response"
)

// Limiter là bộ đếm token theo key
type Limiter interface {
	Allow(key string) bool
}

// RateLimit giới hạn request theo client IP, vượt giới hạn → 429
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.Header("Retry-After", "60")
			response.ErrorResponse(c, http.StatusTooManyRequests, response.CodeRateLimited, "Too many requests, please slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}
