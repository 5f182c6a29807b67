package middleware

import (
	"github.com/gin-gonic/gin"

	"go-restaurant-pos/logger"
)

// RequestID tags every request with an ID and threads it through the
// request context so service-layer log lines can be correlated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}

		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Request = c.Request.WithContext(
			logger.ContextWithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}
