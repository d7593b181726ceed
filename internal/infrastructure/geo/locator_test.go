package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateReturnsCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]float64{"latitude": 40.7, "longitude": -74.0})
	}))
	defer srv.Close()

	locator := NewHTTPLocator(Config{Endpoint: srv.URL, Logger: zerolog.Nop()})
	loc, err := locator.Locate(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, 40.7, loc.Latitude)
	assert.Equal(t, -74.0, loc.Longitude)
}

func TestLocateDisabledWithoutEndpoint(t *testing.T) {
	locator := NewHTTPLocator(Config{Logger: zerolog.Nop()})
	loc, err := locator.Locate(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loc)
}

func TestLocateDegradesWhenProviderDeclines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	locator := NewHTTPLocator(Config{Endpoint: srv.URL, Logger: zerolog.Nop()})
	loc, err := locator.Locate(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loc)
}

func TestLocateHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	locator := NewHTTPLocator(Config{Endpoint: srv.URL, Logger: zerolog.Nop()})
	_, err := locator.Locate(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
