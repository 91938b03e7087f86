package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/trishulai/trishul-api/internal/utils"
)

// RateLimit rejects requests from clients that exceed limiter with a 429
func RateLimit(limiter *utils.RateLimiter, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := utils.GetClientIP(c)
		ok, wait := limiter.Allow(key)
		if !ok {
			logger.WithFields(logrus.Fields{
				"client_ip":   key,
				"path":        c.Request.URL.Path,
				"retry_after": wait.String(),
				"request_id":  utils.GetRequestID(c),
			}).Warn("Rate limit exceeded")
			utils.TooManyRequests(c, "Rate limit exceeded", wait)
			return
		}
		c.Next()
	}
}
