// Package captcha verifies client-supplied reCAPTCHA tokens against the
// Google siteverify endpoint. Any transport or decode failure counts as a
// failed verification: the check fails closed.
package captcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/teamreg/backend/pkg/logger"
	"go.uber.org/zap"
)

const defaultEndpoint = "https://www.google.com/recaptcha/api/siteverify"

// TestSecretKey is Google's published always-pass reCAPTCHA test secret.
// When the configured secret equals it, verification succeeds without
// calling out, so local and CI runs need no network.
const TestSecretKey = "6LeIxAcTAAAAAGG-vFI1TnRWxMZNFuojJ4WifJWe"

type Verifier interface {
	Verify(ctx context.Context, token string) bool
}

type Client struct {
	secret     string
	endpoint   string
	httpClient *http.Client
}

type Option func(*Client)

// WithEndpoint overrides the siteverify URL, used in tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(secret string, opts ...Option) *Client {
	c := &Client{
		secret:   secret,
		endpoint: defaultEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify reports whether the token passes bot verification. Empty tokens
// never pass. No retry is attempted.
func (c *Client) Verify(ctx context.Context, token string) bool {
	l := logger.FromContext(ctx)

	if token == "" {
		return false
	}

	if c.secret == TestSecretKey {
		l.Info("recaptcha test secret configured, verification bypassed")
		return true
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		l.Error("failed to build siteverify request", zap.Error(err))
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		l.Error("siteverify request failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	var result siteverifyResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		l.Error("failed to decode siteverify response", zap.Error(err))
		return false
	}

	if !result.Success {
		l.Warn("recaptcha verification failed", zap.Strings("error_codes", result.ErrorCodes))
	}

	return result.Success
}
