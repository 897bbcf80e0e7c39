package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// InternalSecretMiddleware guards service-to-service endpoints. The secret
// travels in a header so it never leaks into query logs.
func InternalSecretMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(secret) == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal api secret is not configured"})
			c.Abort()
			return
		}
		token := strings.TrimSpace(c.GetHeader("X-Internal-Secret"))
		if token == "" || token != secret {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
