package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/itswalshy/sbux.tipjar/internal/auth"
)

const (
	// userIDKey is the gin context key for the authenticated user ID.
	userIDKey = "auth.user_id"
	// emailKey is the gin context key for the authenticated user's email.
	emailKey = "auth.email"
)

// GetUserID extracts the authenticated user ID from the request context.
// Returns empty string if the request is unauthenticated.
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// GetEmail extracts the authenticated user's email from the request context.
func GetEmail(c *gin.Context) string {
	return c.GetString(emailKey)
}

// RequireAuth validates the Bearer token on the Authorization header and
// stores the user identity on the request context. Requests without a valid
// token are rejected with 401.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(emailKey, claims.Email)
		c.Next()
	}
}
