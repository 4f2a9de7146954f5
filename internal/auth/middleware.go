package auth

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

const (
	ctxKeyUserID = "auth.user_id"
	ctxKeyRole   = "auth.role"
	ctxKeyPhone  = "auth.phone"
)

// Middleware validates the bearer token and stores the caller identity
// on the gin context.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := m.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		id, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
			return
		}

		c.Set(ctxKeyUserID, id)
		c.Set(ctxKeyRole, claims.Role)
		c.Set(ctxKeyPhone, claims.Phone)
		c.Next()
	}
}

// RequireRole gates a route group to one role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CallerRole(c) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func CallerID(c *gin.Context) snowflake.ID {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if id, ok := v.(snowflake.ID); ok {
			return id
		}
	}
	return 0
}

func CallerRole(c *gin.Context) string {
	return c.GetString(ctxKeyRole)
}

func CallerPhone(c *gin.Context) string {
	return c.GetString(ctxKeyPhone)
}
