package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminIDKey is the gin context key holding the authenticated admin id.
const AdminIDKey = "adminID"

type TokenValidator interface {
	ValidateToken(token string) (int64, error)
}

// AuthMiddleware admits requests carrying a valid "Authorization: Bearer <jwt>"
// header and stores the admin id under AdminIDKey.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header required")
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, "Invalid token format (must be Bearer)")
			return
		}

		adminID, err := tokens.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(AdminIDKey, adminID)
		c.Next()
	}
}

// AdminID returns the id set by AuthMiddleware.
func AdminID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(AdminIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": msg})
}
