// Package auth wraps the external identity provider's HTTP API. The provider
// owns credentials, sessions, and one-time-password flows; this service only
// verifies bearer tokens, confirms OTP links, and revokes sessions.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrUnauthorized is returned when the provider rejects a credential.
var ErrUnauthorized = errors.New("auth: unauthorized")

// User is the identity attached to a verified token.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// OTPType enumerates the one-time-password flows the provider supports.
var otpTypes = map[string]struct{}{
	"email":        {},
	"signup":       {},
	"invite":       {},
	"magiclink":    {},
	"recovery":     {},
	"email_change": {},
}

// ValidOTPType reports whether t names a supported OTP flow.
func ValidOTPType(t string) bool {
	_, ok := otpTypes[t]
	return ok
}

// Provider is the identity API surface the HTTP layer depends on.
type Provider interface {
	// VerifyToken resolves a bearer access token to its user.
	VerifyToken(ctx context.Context, accessToken string) (*User, error)

	// VerifyOTP redeems a hashed one-time token of the given type.
	VerifyOTP(ctx context.Context, tokenHash, otpType string) error

	// SignOut revokes the session behind accessToken.
	SignOut(ctx context.Context, accessToken string) error
}

// Client talks to the provider's REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient constructs a provider client. A nil httpClient gets a sane
// default timeout.
func NewClient(baseURL, apiKey string, httpClient *http.Client, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

// VerifyToken implements Provider.
func (c *Client) VerifyToken(ctx context.Context, accessToken string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("auth: build request: %w", err)
	}
	c.authorize(req, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth: verify token: %w", err)
	}
	defer drain(resp)

	switch {
	case resp.StatusCode == http.StatusOK:
		var u User
		if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
			return nil, fmt.Errorf("auth: decode user: %w", err)
		}
		if u.ID == "" {
			return nil, ErrUnauthorized
		}
		return &u, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		return nil, fmt.Errorf("auth: verify token: unexpected status %d", resp.StatusCode)
	}
}

// VerifyOTP implements Provider.
func (c *Client) VerifyOTP(ctx context.Context, tokenHash, otpType string) error {
	body, err := json.Marshal(map[string]string{
		"token_hash": tokenHash,
		"type":       otpType,
	})
	if err != nil {
		return fmt.Errorf("auth: encode otp request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/verify", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("auth: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth: verify otp: %w", err)
	}
	defer drain(resp)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		c.logger.Debug().Int("status", resp.StatusCode).Str("type", otpType).Msg("otp verification rejected")
		return ErrUnauthorized
	default:
		return fmt.Errorf("auth: verify otp: unexpected status %d", resp.StatusCode)
	}
}

// SignOut implements Provider. A token the provider no longer recognises is
// treated as already signed out.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return fmt.Errorf("auth: build request: %w", err)
	}
	c.authorize(req, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth: sign out: %w", err)
	}
	defer drain(resp)

	if resp.StatusCode >= 500 {
		return fmt.Errorf("auth: sign out: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) authorize(req *http.Request, accessToken string) {
	req.Header.Set("apikey", c.apiKey)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
