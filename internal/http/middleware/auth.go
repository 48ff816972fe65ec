// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides bearer-token authentication backed by the external
// identity provider. Verified requests carry the user id in the Gin context
// under "userID", which the rate limiter and handlers already key on.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skatsaros/go-forms-backend/internal/auth"
)

// ctxKeyUserID is the Gin context key carrying the authenticated user id.
const ctxKeyUserID = "userID"

// BearerToken extracts the token from an "Authorization: Bearer …" header.
// Returns "" when the header is absent or malformed.
func BearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth verifies the request's bearer token against the identity
// provider and stores the resolved user id in the context. Requests without
// a valid token are rejected with a 401 envelope.
//
// Verification is per-request; the provider is the source of truth for
// revocation, so no token cache is kept here.
func RequireAuth(provider auth.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			unauthorized(c, "missing bearer token")
			return
		}

		u, err := provider.VerifyToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthorized) {
				unauthorized(c, "invalid or expired token")
				return
			}
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
				"request_id": c.Writer.Header().Get("X-Request-ID"),
				"code":       "auth_unavailable",
				"message":    "authentication service unavailable",
			})
			return
		}

		c.Set(ctxKeyUserID, u.ID)
		c.Set("userEmail", u.Email)
		c.Next()
	}
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       "unauthorized",
		"message":    msg,
	})
}
