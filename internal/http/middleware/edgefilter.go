// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the edge routing filter applied when the server also
// fronts the browser application: unauthenticated visits to protected pages
// bounce to the sign-in page with a return path, and signed-in visits to the
// auth pages bounce back into the application.
package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// EdgeFilterOptions configures EdgeFilter.
type EdgeFilterOptions struct {
	// ProtectedPrefixes lists page path prefixes that require a session.
	ProtectedPrefixes []string
	// SessionCookie is the cookie whose presence marks a signed-in browser.
	SessionCookie string
	// SignInPath receives redirected unauthenticated visitors.
	SignInPath string
	// DefaultPath receives signed-in visitors leaving the auth pages.
	DefaultPath string
}

// defaultEdgeOptions mirror the page layout of the bundled frontend.
func defaultEdgeOptions(opt EdgeFilterOptions) EdgeFilterOptions {
	if len(opt.ProtectedPrefixes) == 0 {
		opt.ProtectedPrefixes = []string{"/dashboard", "/forms", "/profile", "/settings"}
	}
	if opt.SessionCookie == "" {
		opt.SessionCookie = "sb-access-token"
	}
	if opt.SignInPath == "" {
		opt.SignInPath = "/auth/signin"
	}
	if opt.DefaultPath == "" {
		opt.DefaultPath = "/dashboard"
	}
	return opt
}

// EdgeFilter returns a middleware implementing the page-level routing rules.
//
// Rules, in order:
//   - /auth/confirm and /api/auth/ requests pass through untouched; they are
//     only counted in the access log (the confirm endpoint carries its own
//     rate limit).
//   - A visit to a protected prefix without a session cookie is redirected to
//     the sign-in page with the original path in ?from=.
//   - A visit to /auth/signin or /auth/signup with a live session is
//     redirected to ?from= when present, otherwise to the default page.
//
// Only GET page navigations are filtered; API calls authenticate with bearer
// tokens and are never redirected.
func EdgeFilter(opt EdgeFilterOptions) gin.HandlerFunc {
	opt = defaultEdgeOptions(opt)

	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if path == "/auth/confirm" || strings.HasPrefix(path, "/api/auth/") {
			log.Debug().Str("path", path).Str("ip", c.ClientIP()).Msg("auth flow request")
			c.Next()
			return
		}

		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		hasSession := false
		if _, err := c.Cookie(opt.SessionCookie); err == nil {
			hasSession = true
		}

		if !hasSession {
			for _, p := range opt.ProtectedPrefixes {
				if path == p || strings.HasPrefix(path, p+"/") {
					to := opt.SignInPath + "?from=" + url.QueryEscape(c.Request.URL.RequestURI())
					c.Redirect(http.StatusFound, to)
					c.Abort()
					return
				}
			}
			c.Next()
			return
		}

		if path == opt.SignInPath || path == "/auth/signup" {
			to := opt.DefaultPath
			if from := c.Query("from"); safeReturnPath(from) {
				to = from
			}
			c.Redirect(http.StatusFound, to)
			c.Abort()
			return
		}

		c.Next()
	}
}

// safeReturnPath accepts only same-origin absolute paths, refusing redirect
// targets that could bounce the browser to another host.
func safeReturnPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.Contains(p, "\\")
}
