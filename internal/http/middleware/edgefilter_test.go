package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func edgeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(EdgeFilter(EdgeFilterOptions{}))
	for _, p := range []string{"/dashboard", "/forms/abc", "/auth/signin", "/auth/signup", "/auth/confirm", "/pricing"} {
		r.GET(p, func(c *gin.Context) { c.String(http.StatusOK, "page") })
	}
	return r
}

func get(r *gin.Engine, path string, withSession bool) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if withSession {
		req.AddCookie(&http.Cookie{Name: "sb-access-token", Value: "tok"})
	}
	r.ServeHTTP(w, req)
	return w
}

func TestEdgeFilter_ProtectedPageRedirectsAnonymous(t *testing.T) {
	r := edgeRouter()

	w := get(r, "/dashboard", false)
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/auth/signin?from=%2Fdashboard" {
		t.Fatalf("unexpected redirect target %q", loc)
	}

	// Nested paths under a protected prefix redirect too.
	if w := get(r, "/forms/abc", false); w.Code != http.StatusFound {
		t.Fatalf("expected 302 for nested path, got %d", w.Code)
	}
}

func TestEdgeFilter_ProtectedPagePassesWithSession(t *testing.T) {
	r := edgeRouter()
	if w := get(r, "/dashboard", true); w.Code != http.StatusOK {
		t.Fatalf("expected 200 with session, got %d", w.Code)
	}
}

func TestEdgeFilter_PublicPageUntouched(t *testing.T) {
	r := edgeRouter()
	if w := get(r, "/pricing", false); w.Code != http.StatusOK {
		t.Fatalf("public page should pass, got %d", w.Code)
	}
}

func TestEdgeFilter_AuthPagesBounceSignedInUsers(t *testing.T) {
	r := edgeRouter()

	w := get(r, "/auth/signin", true)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
		t.Fatalf("expected bounce to /dashboard, got %d %q", w.Code, w.Header().Get("Location"))
	}

	// A safe ?from= is honored.
	w = get(r, "/auth/signin?from=/forms/abc", true)
	if loc := w.Header().Get("Location"); loc != "/forms/abc" {
		t.Fatalf("expected bounce to from path, got %q", loc)
	}

	// An off-origin ?from= is not.
	w = get(r, "/auth/signin?from=//evil.example", true)
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("expected unsafe from to fall back, got %q", loc)
	}
}

func TestEdgeFilter_ConfirmPassesThrough_AndLogsSourceIP(t *testing.T) {
	buf := captureLogger(t)
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	r := edgeRouter()
	if w := get(r, "/auth/confirm", false); w.Code != http.StatusOK {
		t.Fatalf("confirm must never be redirected, got %d", w.Code)
	}

	logs := buf.String()
	if !strings.Contains(logs, `"path":"/auth/confirm"`) || !strings.Contains(logs, `"ip":"192.0.2.1"`) {
		t.Fatalf("expected auth flow log with source ip, got: %s", logs)
	}
}
