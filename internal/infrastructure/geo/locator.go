// Package geo resolves a best-effort client location from an IP geolocation
// endpoint. Location is an enhancement, never a requirement; every failure
// mode degrades to "no location".
package geo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vadesa1/stans-events-web/domain"
)

// HTTPLocator implements domain.Locator against a JSON IP geolocation
// endpoint returning {"latitude": ..., "longitude": ...}.
type HTTPLocator struct {
	endpoint   string
	httpClient *http.Client
	log        zerolog.Logger
}

// Config configures the locator. An empty Endpoint disables geolocation
// entirely; Locate then reports no location immediately.
type Config struct {
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// NewHTTPLocator creates a locator.
func NewHTTPLocator(cfg Config) *HTTPLocator {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 3 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &HTTPLocator{
		endpoint:   cfg.Endpoint,
		httpClient: httpClient,
		log:        cfg.Logger.With().Str("component", "geo").Logger(),
	}
}

type locationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Locate implements domain.Locator. It returns (nil, nil) when the endpoint
// is unset or the provider declines; callers fall back to unfiltered
// results either way.
func (l *HTTPLocator) Locate(ctx context.Context) (*domain.Location, error) {
	if l.endpoint == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		// Cancellation is the caller deciding to stop waiting, not a
		// provider fault.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		l.log.Debug().Err(err).Msg("geolocation provider unreachable")
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		l.log.Debug().Int("status", resp.StatusCode).Msg("geolocation provider declined")
		return nil, nil
	}

	var loc locationResponse
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return nil, nil
	}
	if loc.Latitude == 0 && loc.Longitude == 0 {
		return nil, nil
	}
	return &domain.Location{Latitude: loc.Latitude, Longitude: loc.Longitude}, nil
}
