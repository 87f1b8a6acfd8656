package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealplanner/backend/internal/types"
)

const (
	identityKey = "identity"
	tokenKey    = "token"
)

// Authenticator resolves a bearer token to the identity it was issued for
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (types.Identity, error)
}

// AuthMiddleware rejects requests without a valid bearer token
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "missing or malformed authorization header")
			return
		}

		identity, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}

		c.Set(identityKey, identity)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and treats
// the request as a guest otherwise. A token that is present but invalid is
// still rejected so that clients notice expired sessions.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		AuthMiddleware(auth)(c)
	}
}

// IdentityFrom returns the requester attached by the auth middleware, or
// types.Guest
func IdentityFrom(c *gin.Context) types.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(types.Identity); ok {
			return identity
		}
	}
	return types.Guest
}

// TokenFrom returns the raw bearer token of an authenticated request
func TokenFrom(c *gin.Context) string {
	return c.GetString(tokenKey)
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message, "kind": "unauthorized"})
}
