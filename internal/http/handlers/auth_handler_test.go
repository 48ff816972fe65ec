package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func authRouter(p stubProvider) *gin.Engine {
	h := New(stubFormSvc{}, stubSubSvc{}, stubUploadSvc{}, stubCommentSvc{}, p, "https://forms.example")
	r := gin.New()
	r.GET("/auth/confirm", h.ConfirmAuth)
	r.POST("/api/auth/signout", h.SignOut)
	return r
}

func TestConfirmAuth_Success_DefaultAndNextRedirects(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotHash, gotType string
	p := stubProvider{
		verifyOTP: func(ctx context.Context, tokenHash, otpType string) error {
			gotHash, gotType = tokenHash, otpType
			return nil
		},
	}
	r := authRouter(p)

	// No next -> success page, product-default language
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/confirm?token_hash=pkce_0123456789abcdef&type=email", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusFound {
		t.Fatalf("confirm -> %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/auth/success?lang=zh-CN" {
		t.Fatalf("location = %q", loc)
	}
	if gotHash != "pkce_0123456789abcdef" || gotType != "email" {
		t.Fatalf("provider got hash=%q type=%q", gotHash, gotType)
	}

	// Browser language is honored on the landing page
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/auth/confirm?token_hash=pkce_0123456789abcdef&type=signup", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	r.ServeHTTP(w, req)
	if loc := w.Header().Get("Location"); loc != "/auth/success?lang=en-US" {
		t.Fatalf("location = %q", loc)
	}

	// Safe next honored verbatim
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/auth/confirm?token_hash=pkce_0123456789abcdef&type=recovery&next=/account/password", nil)
	r.ServeHTTP(w, req)
	if loc := w.Header().Get("Location"); loc != "/account/password" {
		t.Fatalf("location = %q", loc)
	}

	// Protocol-relative next rejected
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/auth/confirm?token_hash=pkce_0123456789abcdef&type=email&next=//evil.example", nil)
	r.ServeHTTP(w, req)
	if loc := w.Header().Get("Location"); loc != "/auth/success?lang=zh-CN" {
		t.Fatalf("location = %q", loc)
	}
}

func TestConfirmAuth_RejectsBadInput_WithoutProviderCall(t *testing.T) {
	gin.SetMode(gin.TestMode)

	called := false
	p := stubProvider{
		verifyOTP: func(ctx context.Context, tokenHash, otpType string) error {
			called = true
			return nil
		},
	}
	r := authRouter(p)

	for _, q := range []string{
		"token_hash=short&type=email",                            // below minimum length
		"token_hash=" + strings.Repeat("a", 201) + "&type=email", // above maximum
		"token_hash=pkce_0123456789abcdef&type=sms",              // unknown otp type
		"type=email", // hash missing
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/confirm?"+q, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusFound {
			t.Fatalf("confirm %q -> %d", q, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/auth/auth-code-error?error=invalid_request&lang=zh-CN" {
			t.Fatalf("confirm %q location = %q", q, loc)
		}
	}
	if called {
		t.Fatalf("provider must not be called for malformed input")
	}
}

func TestConfirmAuth_ProviderFailure_RedirectsToErrorPage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	p := stubProvider{
		verifyOTP: func(ctx context.Context, tokenHash, otpType string) error {
			return errors.New("token expired")
		},
	}
	r := authRouter(p)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/confirm?token_hash=pkce_0123456789abcdef&type=magiclink", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusFound {
		t.Fatalf("confirm -> %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/auth/auth-code-error?error=verification_failed&lang=zh-CN" {
		t.Fatalf("location = %q", loc)
	}
}

func TestSignOut_Statuses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// No bearer token -> 401
	{
		r := authRouter(stubProvider{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signout", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("signout no token -> %d", w.Code)
		}
	}

	// Provider accepts -> 200 {success:true}
	{
		var gotToken string
		p := stubProvider{
			signOut: func(ctx context.Context, token string) error {
				gotToken = token
				return nil
			},
		}
		r := authRouter(p)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signout", nil)
		req.Header.Set("Authorization", "Bearer tok-123")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("signout -> %d", w.Code)
		}
		if gotToken != "tok-123" {
			t.Fatalf("token = %q", gotToken)
		}
		var body map[string]bool
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("json: %v", err)
		}
		if !body["success"] {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	}

	// Provider unreachable -> 502
	{
		p := stubProvider{
			signOut: func(ctx context.Context, token string) error {
				return errors.New("connection refused")
			},
		}
		r := authRouter(p)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signout", nil)
		req.Header.Set("Authorization", "Bearer tok-123")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadGateway {
			t.Fatalf("signout -> %d", w.Code)
		}
	}
}
