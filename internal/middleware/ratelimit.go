package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"stays-backend/internal/ratelimit"
)

// RateLimit keys requests by client IP and route. Limiter failures let the request through.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.FullPath()
		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Println("[RATELIMIT] [ERROR] limiter unavailable:", err)
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "Too many requests. Please try again later."})
			return
		}
		c.Next()
	}
}
