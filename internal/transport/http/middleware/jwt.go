package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"instructo-gateway/internal/pkg/jwtutil"
	"instructo-gateway/internal/transport/http/response"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
)

// AuthJWT validates the bearer token and exposes the authenticated
// identity to handlers via the gin context.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, 401, response.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, 401, response.CodeUnauthorized, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Error(c, 401, response.CodeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}

// Identity pulls the authenticated user out of the context; ok is false
// when the middleware did not run.
func Identity(c *gin.Context) (userID uint, username string, ok bool) {
	idAny, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, "", false
	}
	id, castOK := idAny.(uint)
	if !castOK {
		return 0, "", false
	}

	nameAny, exists := c.Get(ContextUsernameKey)
	if !exists {
		return 0, "", false
	}
	name, castOK := nameAny.(string)
	if !castOK || name == "" {
		return 0, "", false
	}
	return id, name, true
}
