package nws

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-ingest/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestURLBuilders(t *testing.T) {
	c := NewClient("https://api.weather.gov", "test", time.Second, discardLogger())
	loc := domain.Location{GridID: "OKX", GridX: 33, GridY: 35}
	st := domain.Station{ID: "KNYC"}

	assert.Equal(t, "https://api.weather.gov/gridpoints/OKX/33,35", c.QuantitativeURL(loc))
	assert.Equal(t, "https://api.weather.gov/gridpoints/OKX/33,35/forecast", c.DailyForecastURL(loc))
	assert.Equal(t, "https://api.weather.gov/gridpoints/OKX/33,35/forecast/hourly", c.HourlyForecastURL(loc))
	assert.Equal(t, "https://api.weather.gov/stations/KNYC/observations/latest", c.ObservationURL(st))
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	c := NewClient("", "test", time.Second, discardLogger())

	assert.Equal(t, "https://api.weather.gov/gridpoints/LWX/96,70", c.QuantitativeURL(domain.Location{GridID: "LWX", GridX: 96, GridY: 70}))
}

func TestGet(t *testing.T) {
	var gotUserAgent, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"properties":{}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "weather-ingest/1.0", time.Second, discardLogger())
	body, err := c.Get(context.Background(), srv.URL+"/gridpoints/OKX/33,35/forecast")

	require.NoError(t, err)
	assert.Equal(t, `{"properties":{}}`, string(body))
	assert.Equal(t, "weather-ingest/1.0", gotUserAgent)
	assert.Equal(t, "application/geo+json", gotAccept)
}

func TestGet_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test", time.Second, discardLogger())
	url := srv.URL + "/stations/KXYZ/observations/latest"
	_, err := c.Get(context.Background(), url)

	require.Error(t, err)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, url, statusErr.URL)
	assert.Contains(t, err.Error(), "404")
}

func TestGet_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "test", time.Second, discardLogger())
	_, err := c.Get(context.Background(), srv.URL+"/gridpoints/OKX/33,35")

	require.Error(t, err)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestGet_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, "test", time.Second, discardLogger())
	_, err := c.Get(ctx, srv.URL+"/gridpoints/OKX/33,35")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
