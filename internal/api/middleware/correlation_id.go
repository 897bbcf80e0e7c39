package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const correlationIDKey = "correlationID"

// CorrelationIDMiddleware makes sure every request carries a correlation id.
func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Correlation-ID")
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(correlationIDKey, id)
		c.Header("X-Correlation-ID", id)

		c.Next()
	}
}

// GetCorrelationID returns the request's correlation id, or "".
func GetCorrelationID(c *gin.Context) string {
	if value, ok := c.Get(correlationIDKey); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
