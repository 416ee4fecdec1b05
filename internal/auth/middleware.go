package auth

import (
	"strings"

	"codeberg.org/fitstack/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// gates protected routes: extracts the bearer token, verifies it against the
// identity provider, and injects the verified subject into the request
// context. Every verification failure is rejected uniformly so nothing about
// the provider leaks to unauthenticated callers.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.Unauthorized(c, "")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			errors.Unauthorized(c, "")
			c.Abort()
			return
		}

		info, err := verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			errors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(ContextExternalID, info.Subject)
		c.Set(ContextUsername, info.Username)

		c.Next()
	}
}

// extracts the verified subject identifier set by RequireAuth
func GetExternalID(c *gin.Context) (string, bool) {
	externalID, exists := c.Get(ContextExternalID)
	if !exists {
		return "", false
	}

	id, ok := externalID.(string)
	if !ok || id == "" {
		return "", false
	}

	return id, true
}
