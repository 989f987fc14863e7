// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Configuration constants for the Gemini API.
const (
	// DefaultBaseURL is the base URL of the Generative Language API.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "gemini-2.0-flash"

	// DefaultTimeout bounds a single Generate call, retries included.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxRetries is zero: a failed attempt ends the exchange.
	DefaultMaxRetries = 0

	// retryBaseDelay is the base delay for exponential backoff.
	retryBaseDelay = 500 * time.Millisecond

	// retryMaxDelay caps the backoff delay.
	retryMaxDelay = 10 * time.Second

	// MaxResponseSize is the maximum accepted response body size.
	MaxResponseSize = 10 * 1024 * 1024
)

// Error variables for common Gemini failures.
var (
	// ErrNotConfigured indicates the API key is not set.
	ErrNotConfigured = errors.New("Gemini API key not configured")

	// ErrAuthFailed indicates the API key was rejected.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimited indicates the quota or rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrModelNotFound indicates the requested model does not exist.
	ErrModelNotFound = errors.New("model not found")

	// ErrBlocked indicates the prompt or reply was blocked by safety filters.
	ErrBlocked = errors.New("blocked by safety filters")

	// ErrEmptyResponse indicates a successful response with no text.
	ErrEmptyResponse = errors.New("empty response")
)

// APIError is an API failure not covered by a sentinel error.
type APIError struct {
	Code    int    // HTTP status code
	Status  string // Google status, e.g. INVALID_ARGUMENT
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("Gemini error [%s] (HTTP %d): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("Gemini error (HTTP %d): %s", e.Code, e.Message)
}

// sharedTransport pools connections across clients.
var sharedTransport = &http.Transport{
	MaxIdleConns:        10,
	MaxIdleConnsPerHost: 4,
	IdleConnTimeout:     90 * time.Second,
	TLSHandshakeTimeout: 10 * time.Second,
	TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
}

// Client is a client for the Gemini generateContent API.
// A Client is safe for concurrent use once configured.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a client with the given API key and default settings.
// An empty key yields a client whose Generate fails with ErrNotConfigured.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		httpClient: &http.Client{Transport: sharedTransport},
		timeout:    DefaultTimeout,
		maxRetries: DefaultMaxRetries,
		retryDelay: retryBaseDelay,
		logger:     slog.Default(),
	}
}

// WithBaseURL sets a custom base URL for the API.
func (c *Client) WithBaseURL(u string) *Client {
	if u != "" {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
	return c
}

// WithModel sets the model name. A "models/" prefix is accepted.
func (c *Client) WithModel(model string) *Client {
	model = strings.TrimPrefix(strings.TrimSpace(model), "models/")
	if model != "" {
		c.model = model
	}
	return c
}

// WithTimeout bounds each Generate call. Zero disables the bound.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	return c
}

// WithMaxRetries sets the number of retries after the first attempt.
func (c *Client) WithMaxRetries(n int) *Client {
	if n < 0 {
		n = 0
	}
	c.maxRetries = n
	return c
}

// WithRequestsPerMinute limits outgoing requests. Zero means unlimited.
func (c *Client) WithRequestsPerMinute(n int) *Client {
	if n <= 0 {
		c.limiter = nil
		return c
	}
	c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), 1)
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// WithLogger sets the logger.
func (c *Client) WithLogger(l *slog.Logger) *Client {
	if l != nil {
		c.logger = l
	}
	return c
}

// Model returns the configured model.
func (c *Client) Model() string {
	return c.model
}

// IsConfigured reports whether an API key is set.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// KeyFingerprint returns the first 8 hex characters of the key's SHA-256.
func (c *Client) KeyFingerprint() string {
	if c.apiKey == "" {
		return "none"
	}
	h := sha256.Sum256([]byte(c.apiKey))
	return hex.EncodeToString(h[:4])
}

// APIKeyMasked returns a display form of the key that reveals no characters.
func (c *Client) APIKeyMasked() string {
	if c.apiKey == "" {
		return "[not set]"
	}
	return fmt.Sprintf("[REDACTED, length=%d, fingerprint=%s]", len(c.apiKey), c.KeyFingerprint())
}

// endpoint returns the generateContent URL for the configured model.
func (c *Client) endpoint() string {
	return c.baseURL + "/v1beta/models/" + url.PathEscape(c.model) + ":generateContent"
}

// Generate sends prompt as a single user turn and returns the reply text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.GenerateContent(ctx, NewUserRequest(prompt))
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// GenerateContent performs a generateContent request, retrying rate limits
// and server errors up to the configured retry count.
func (c *Client) GenerateContent(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	log := c.logger.With("model", c.model, "key", c.KeyFingerprint())
	log.Debug("gemini request", "prompt_bytes", promptSize(req))

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff(attempt)):
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limiter: %w", err)
			}
		}

		start := time.Now()
		resp, err := c.doRequest(ctx, body)
		if err == nil {
			log.Info("gemini response", "attempt", attempt+1, "duration", time.Since(start))
			return resp, nil
		}

		log.Warn("gemini request failed", "attempt", attempt+1, "duration", time.Since(start), "error", err)
		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err
	}

	if c.maxRetries == 0 {
		return nil, lastErr
	}
	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// doRequest performs one HTTP round trip.
func (c *Client) doRequest(ctx context.Context, body []byte) (*GenerateResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, handleErrorResponse(resp.StatusCode, data)
	}

	var out GenerateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("%w: %s", ErrBlocked, out.PromptFeedback.BlockReason)
	}
	if strings.TrimSpace(out.Text()) == "" {
		if len(out.Candidates) > 0 && out.Candidates[0].FinishReason == "SAFETY" {
			return nil, fmt.Errorf("%w: SAFETY", ErrBlocked)
		}
		return nil, ErrEmptyResponse
	}
	return &out, nil
}

// readResponse reads the body up to MaxResponseSize.
func readResponse(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(data) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return data, nil
}

// handleErrorResponse converts a non-200 response into an error.
func handleErrorResponse(statusCode int, body []byte) error {
	apiErr := &APIError{Code: statusCode, Message: http.StatusText(statusCode)}

	var parsed apiErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		apiErr.Message = parsed.Error.Message
		apiErr.Status = parsed.Error.Status
	} else if s := strings.TrimSpace(string(body)); s != "" {
		apiErr.Message = s
	}

	switch {
	case statusCode == http.StatusUnauthorized, statusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuthFailed, apiErr.Message)
	case statusCode == http.StatusBadRequest && strings.Contains(apiErr.Message, "API key not valid"):
		// Google reports a bad key as 400 INVALID_ARGUMENT.
		return fmt.Errorf("%w: %s", ErrAuthFailed, apiErr.Message)
	case statusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrModelNotFound, apiErr.Message)
	case statusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Message)
	default:
		return apiErr
	}
}

// isRetryable reports whether err is a rate limit or server error.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code >= 500 && apiErr.Code < 600
	}
	return false
}

// backoff returns the delay before the given retry attempt.
func (c *Client) backoff(attempt int) time.Duration {
	delay := c.retryDelay * time.Duration(1<<uint(attempt-1))
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	return delay
}

func promptSize(req GenerateRequest) int {
	n := 0
	for _, c := range req.Contents {
		for _, p := range c.Parts {
			n += len(p.Text)
		}
	}
	return n
}
