// Auth HTTP handlers.
//
// This file exposes the thin server-side pieces of the auth flow; the
// identity provider owns the heavy lifting:
//   - GET  /auth/confirm      (redeem an emailed OTP link, then redirect)
//   - POST /api/auth/signout  (revoke the caller's session)
//
// The confirm endpoint is a browser redirect target, so it answers with 302s
// to the frontend's success and error pages rather than JSON. Redirects carry
// the resolved language so the landing page renders in the user's locale.
package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skatsaros/go-forms-backend/internal/auth"
	"github.com/skatsaros/go-forms-backend/internal/http/middleware"
	"github.com/skatsaros/go-forms-backend/internal/i18n"
)

const (
	confirmSuccessPath = "/auth/success"
	confirmErrorPath   = "/auth/auth-code-error"

	// token_hash length bounds; anything outside is rejected without a
	// provider round trip.
	tokenHashMinLen = 10
	tokenHashMaxLen = 200
)

// confirmLang resolves the redirect language. Emailed links carry either
// ?lang= or ?language=, and browsers add Accept-Language.
func confirmLang(c *gin.Context) string {
	q := c.Query("lang")
	if q == "" {
		q = c.Query("language")
	}
	return i18n.Resolve(q, c.GetHeader("Accept-Language"))
}

func confirmError(c *gin.Context, reason, lang string) {
	c.Redirect(http.StatusFound, confirmErrorPath+"?error="+url.QueryEscape(reason)+"&lang="+lang)
}

// ConfirmAuthError redirects to the auth error page; the router uses it when
// the confirm rate limit trips.
func ConfirmAuthError(c *gin.Context, reason string) {
	confirmError(c, reason, confirmLang(c))
}

// ConfirmAuth godoc
// @ID          confirmAuth
// @Summary     Redeem an emailed one-time login link
// @Description Verifies the token_hash with the identity provider and
// @Description redirects the browser to the success page (or ?next=), or to
// @Description the error page when the token is invalid or expired.
// @Tags        Auth
// @Param       token_hash query string true  "Hashed one-time token"
// @Param       type       query string true  "OTP flow type" Enums(email, signup, invite, magiclink, recovery, email_change)
// @Param       next       query string false "Post-confirmation path" default(/auth/success)
// @Param       lang       query string false "Landing page language"
// @Success     302 {string} string "Redirect"
// @Router      /auth/confirm [get]
func (h *Handlers) ConfirmAuth(c *gin.Context) {
	lang := confirmLang(c)
	tokenHash := c.Query("token_hash")
	otpType := c.Query("type")

	if len(tokenHash) < tokenHashMinLen || len(tokenHash) > tokenHashMaxLen || !auth.ValidOTPType(otpType) {
		confirmError(c, "invalid_request", lang)
		return
	}

	if err := h.provider.VerifyOTP(c.Request.Context(), tokenHash, otpType); err != nil {
		lg := middleware.LoggerFrom(c)
		lg.Warn().Err(err).Str("type", otpType).Msg("otp confirmation failed")
		confirmError(c, "verification_failed", lang)
		return
	}

	if next := c.Query("next"); strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		c.Redirect(http.StatusFound, next)
		return
	}
	c.Redirect(http.StatusFound, confirmSuccessPath+"?lang="+lang)
}

// SignOut godoc
// @ID          signOut
// @Summary     Revoke the caller's session
// @Description Best-effort: a token the provider no longer recognises still
// @Description results in success, since the session is gone either way.
// @Tags        Auth
// @Produce     json
// @Success     200 {object} map[string]bool
// @Failure     401 {object} handlers.ErrorResponse "Missing bearer token"
// @Router      /api/auth/signout [post]
func (h *Handlers) SignOut(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing bearer token")
		return
	}
	if err := h.provider.SignOut(c.Request.Context(), token); err != nil {
		fail(c, http.StatusBadGateway, ErrCodeInternal, "could not sign out")
		return
	}
	ok(c, http.StatusOK, gin.H{"success": true})
}
