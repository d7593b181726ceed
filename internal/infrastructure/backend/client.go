// Package backend is the typed client for the events REST API. Every
// operation normalizes failure into a single *domain.RequestError and reads
// the bearer credential fresh from the token source, so the client itself
// holds no mutable state.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vadesa1/stans-events-web/domain"
	"github.com/vadesa1/stans-events-web/internal/metrics"
)

const genericErrorMessage = "An error occurred"

// Status codes worth a second attempt on idempotent reads.
var retryableStatusCodes = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Client issues HTTP calls against the resolved API base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     domain.TokenSource
	metrics    *metrics.Metrics
	log        zerolog.Logger
	maxRetries int
}

// Config configures the backend client.
type Config struct {
	BaseURL    string
	Tokens     domain.TokenSource
	HTTPClient *http.Client
	Metrics    *metrics.Metrics
	Logger     zerolog.Logger
	// MaxRetries bounds extra attempts for idempotent GETs. Defaults to 1.
	MaxRetries int
}

// NewClient creates a backend client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend: base URL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = 1
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		tokens:     cfg.Tokens,
		metrics:    cfg.Metrics,
		log:        cfg.Logger.With().Str("component", "backend").Logger(),
		maxRetries: maxRetries,
	}, nil
}

// get performs an idempotent read with one bounded retry.
func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		retryable, err := c.do(ctx, op, http.MethodGet, path, query, nil, "", out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			return err
		}
		c.log.Debug().Str("operation", op).Int("attempt", attempt+1).Msg("retrying read")
	}
	return lastErr
}

// post performs a state-mutating call. Never retried: a duplicate attempt
// could create a duplicate side effect.
func (c *Client) post(ctx context.Context, op, path string, body any, idempotencyKey string, out any) error {
	_, err := c.do(ctx, op, http.MethodPost, path, nil, body, idempotencyKey, out)
	return err
}

// put performs a state-mutating update. Never retried.
func (c *Client) put(ctx context.Context, op, path string, body any, out any) error {
	_, err := c.do(ctx, op, http.MethodPut, path, nil, body, "", out)
	return err
}

// do runs one HTTP exchange. retryable reports whether the failure is safe
// to retry for an idempotent operation.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any, idempotencyKey string, out any) (retryable bool, err error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return false, &domain.RequestError{Message: genericErrorMessage}
		}
		reqBody = bytes.NewReader(data)
	} else if method != http.MethodGet {
		reqBody = strings.NewReader("{}")
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return false, &domain.RequestError{Message: genericErrorMessage}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(op, "transport_error", start)
		msg := err.Error()
		if msg == "" {
			msg = genericErrorMessage
		}
		return true, &domain.RequestError{Message: msg}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(op, "read_error", start)
		return true, &domain.RequestError{Message: genericErrorMessage, StatusCode: resp.StatusCode}
	}

	c.observe(op, strconv.Itoa(resp.StatusCode), start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return retryableStatusCodes[resp.StatusCode], normalizeError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			c.log.Warn().Str("operation", op).Err(err).Msg("undecodable response body")
			return false, &domain.RequestError{Message: genericErrorMessage, StatusCode: resp.StatusCode}
		}
	}
	return false, nil
}

func (c *Client) observe(op, status string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.BackendRequests.WithLabelValues(op, status).Inc()
	c.metrics.BackendLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// normalizeError builds the single error shape every operation fails with:
// server detail when present, else a status-derived message.
func normalizeError(statusCode int, body []byte) *domain.RequestError {
	var apiErr struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Detail != "" {
		return &domain.RequestError{Message: apiErr.Detail, StatusCode: statusCode}
	}
	msg := http.StatusText(statusCode)
	if msg == "" {
		msg = genericErrorMessage
	}
	return &domain.RequestError{Message: msg, StatusCode: statusCode}
}

func searchQuery(params domain.EventSearch) url.Values {
	q := url.Values{}
	if params.Query != "" {
		q.Set("query", params.Query)
	}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	if params.Latitude != nil {
		q.Set("lat", formatFloat(*params.Latitude))
	}
	if params.Longitude != nil {
		q.Set("lon", formatFloat(*params.Longitude))
	}
	if params.Radius != nil {
		q.Set("radius", formatFloat(*params.Radius))
	}
	if params.StartDate != "" {
		q.Set("start_date", params.StartDate)
	}
	if params.EndDate != "" {
		q.Set("end_date", params.EndDate)
	}
	if params.Size > 0 {
		q.Set("size", strconv.Itoa(params.Size))
	}
	if params.Skip > 0 {
		q.Set("skip", strconv.Itoa(params.Skip))
	}
	return q
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
