package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skatsaros/go-forms-backend/internal/auth"
	"github.com/skatsaros/go-forms-backend/internal/config"
	"github.com/skatsaros/go-forms-backend/internal/repo"

	"gorm.io/gorm"
)

// --- fake identity provider ---

type fakeProvider struct {
	user *auth.User
}

func (p fakeProvider) VerifyToken(ctx context.Context, token string) (*auth.User, error) {
	if p.user != nil {
		return p.user, nil
	}
	return nil, auth.ErrUnauthorized
}

func (p fakeProvider) VerifyOTP(ctx context.Context, tokenHash, otpType string) error {
	return nil
}

func (p fakeProvider) SignOut(ctx context.Context, token string) error { return nil }

// --- test DB helper (pure-Go sqlite, no CGO) ---

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := repo.OpenSQLite(dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func baseConfig() config.Config {
	return config.Config{
		APIBasePath:      "/api",
		AppBaseURL:       "https://forms.example",
		RateRPS:          100,
		RateBurst:        10,
		ConfirmRateMax:   10,
		ConfirmRateEvery: time.Minute,
		CommentCacheTTL:  5 * time.Minute,
		CORS:             config.CORSConfig{AllowedOrigins: nil}, // triggers AllowAllOrigins branch
		Security:         config.SecurityConfig{EnableHSTS: false, HSTSMaxAge: 0},
		OTEL:             config.OTELConfig{ServiceName: "test-svc"},
	}
}

func TestRegisterRoutes_CORSAllowAll_Health_Metrics_Fallbacks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	db := newTestDB(t)

	RegisterRoutes(r, db, nil, nil, fakeProvider{}, baseConfig())

	// /health works
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	// CORS (AllowAllOrigins) → header "*"
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}

	// /metrics is wired
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || len(w.Body.Bytes()) == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	// NoRoute → 404
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope expected 404, got %d", w.Code)
	}

	// NoMethod → 405 (DELETE /health)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("DELETE /health expected 405, got %d", w.Code)
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEcho(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	db := newTestDB(t)

	cfg := baseConfig()
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"http://example.com"}}
	RegisterRoutes(r, db, nil, nil, fakeProvider{}, cfg)

	// Any request runs through CORS middleware; header should reflect origin.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}
}

func TestRegisterRoutes_AuthGate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	db := newTestDB(t)

	RegisterRoutes(r, db, nil, nil, fakeProvider{user: &auth.User{ID: "u1"}}, baseConfig())

	// No token → 401 on the authenticated surface
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/forms", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("GET /api/forms without token = %d", w.Code)
	}

	// Valid token → 200 and an empty listing
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/forms", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/forms with token = %d body=%s", w.Code, w.Body.String())
	}

	// Public surface stays open: unknown form is a 404, not a 401
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/submit/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /api/submit/{unknown} = %d", w.Code)
	}
}

func TestRegisterRoutes_UploadURL_WithoutStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	db := newTestDB(t)

	RegisterRoutes(r, db, nil, nil, fakeProvider{}, baseConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload-url", bytes.NewBufferString(`{"filename":"cv.pdf"}`))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("POST /api/upload-url without store = %d", w.Code)
	}
}

func TestRegisterRoutes_ConfirmRedirects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	db := newTestDB(t)

	RegisterRoutes(r, db, nil, nil, fakeProvider{}, baseConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/confirm?token_hash=pkce_0123456789abcdef&type=email", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusFound {
		t.Fatalf("GET /auth/confirm = %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/auth/success?lang=zh-CN" {
		t.Fatalf("confirm location = %q", loc)
	}
}

func TestRegisterRoutes_ConfirmRateLimit_Redirects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	db := newTestDB(t)

	cfg := baseConfig()
	cfg.ConfirmRateMax = 1
	RegisterRoutes(r, db, nil, nil, fakeProvider{}, cfg)

	target := "/auth/confirm?token_hash=pkce_0123456789abcdef&type=email"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	if w.Code != http.StatusFound {
		t.Fatalf("first confirm = %d", w.Code)
	}

	// Second hit from the same IP inside the window redirects to the error
	// page instead of answering 429 JSON.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	if w.Code != http.StatusFound {
		t.Fatalf("rate-limited confirm = %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/auth/auth-code-error?error=rate_limited&lang=zh-CN" {
		t.Fatalf("rate-limited location = %q", loc)
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// tiny cap to trigger MaxBytesReader
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")) // 12 bytes
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// "/" and "" should mount at root
	root1 := groupWithPrefix(r, "/")
	root1.GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	root2 := groupWithPrefix(r, "")
	root2.GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })

	// non-root prefix
	api := groupWithPrefix(r, "/api")
	api.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	// Hit all three
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/one", nil)
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "one" {
		t.Fatalf("GET /one got %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/two", nil)
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "two" {
		t.Fatalf("GET /two got %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Fatalf("GET /api/ping got %d %q", rec.Code, rec.Body.String())
	}
}

// Smoke test that a request traverses ratelimit + otel + security headers + gzip pipeline.
func TestPipeline_Smoke(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	db := newTestDB(t)

	cfg := baseConfig()
	cfg.Security = config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: time.Hour} // enabled (but only set on https)
	RegisterRoutes(r, db, nil, nil, fakeProvider{}, cfg)

	// Any request goes through the middleware stack
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	// simulate https so HSTS could be eligible if middleware checks scheme
	req.URL.Scheme = "https"
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("pipeline GET /health = %d", w.Code)
	}
	// RequestID header should be present (from RequestID middleware)
	if rid := w.Header().Get("X-Request-ID"); rid == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
	// Security headers applied
	if v := w.Header().Get("X-Content-Type-Options"); v != "nosniff" {
		t.Fatalf("expected nosniff, got %q", v)
	}
}
