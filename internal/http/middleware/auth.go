// README: Bearer token auth middleware; stores caller identity on the gin context.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"getdriven/internal/auth"
)

const (
	callerIDKey    = "caller_id"
	callerEmailKey = "caller_email"
)

func Auth(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}
		claims, err := verifier.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(callerIDKey, claims.Subject)
		c.Set(callerEmailKey, claims.Email)
		c.Next()
	}
}

// CallerID returns the authenticated user id, or "" outside Auth.
func CallerID(c *gin.Context) string {
	return c.GetString(callerIDKey)
}

func CallerEmail(c *gin.Context) string {
	return c.GetString(callerEmailKey)
}
