package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "anon-key", srv.Client(), zerolog.Nop())
}

func TestVerifyToken_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("apikey") != "anon-key" {
			t.Errorf("missing apikey header")
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("missing bearer header")
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "u1", "email": "a@b.co"})
	})

	u, err := c.VerifyToken(context.Background(), "tok")
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if u.ID != "u1" || u.Email != "a@b.co" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestVerifyToken_Rejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	if _, err := c.VerifyToken(context.Background(), "bad"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyToken_EmptyIDIsUnauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"email": "ghost@b.co"})
	})
	if _, err := c.VerifyToken(context.Background(), "tok"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty id, got %v", err)
	}
}

func TestVerifyOTP(t *testing.T) {
	var got map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/verify" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	})

	if err := c.VerifyOTP(context.Background(), "hash123", "magiclink"); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if got["token_hash"] != "hash123" || got["type"] != "magiclink" {
		t.Fatalf("unexpected payload: %v", got)
	}
}

func TestVerifyOTP_Expired(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	if err := c.VerifyOTP(context.Background(), "stale", "recovery"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSignOut_ToleratesUnknownToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/logout" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusUnauthorized)
	})
	if err := c.SignOut(context.Background(), "gone"); err != nil {
		t.Fatalf("SignOut should tolerate rejected tokens, got %v", err)
	}
}

func TestValidOTPType(t *testing.T) {
	for _, ok := range []string{"email", "signup", "invite", "magiclink", "recovery", "email_change"} {
		if !ValidOTPType(ok) {
			t.Fatalf("%q should be valid", ok)
		}
	}
	if ValidOTPType("sms") || ValidOTPType("") {
		t.Fatalf("unknown types must be rejected")
	}
}
