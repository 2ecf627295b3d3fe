package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// userIDKey is where the middleware stores the authenticated user id in the
// gin context. Handlers read it through CurrentUserID.
const userIDKey = "auth.user_id"

// Middleware rejects requests without a valid bearer token and exposes the
// current user id to downstream handlers.
func Middleware(tokens TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id set by Middleware.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
