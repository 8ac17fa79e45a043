package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/open-meteo-tools/internal/weather"
)

var configKeys = []string{
	"PORT", "LOG_LEVEL", "LOG_FORMAT", "HTTP_TIMEOUT", "SHUTDOWN_TIMEOUT", "USER_AGENT",
	"OPEN_METEO_FORECAST_URL", "OPEN_METEO_AIR_QUALITY_URL", "OPEN_METEO_GEOCODING_URL",
	"OPEN_METEO_ARCHIVE_URL", "OPEN_METEO_MARINE_URL", "UPSTREAM_MAX_RETRIES",
	"WATCH_INTERVAL", "WATCH_LOCATIONS", "WATCH_HOURS", "WATCH_HISTORY",
	"WATCH_RETENTION", "COMPARE_CONCURRENCY",
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "https://api.open-meteo.com/v1", cfg.ForecastURL)
	assert.Equal(t, "https://archive-api.open-meteo.com/v1", cfg.ArchiveURL)
	assert.Equal(t, 3, cfg.UpstreamMaxRetries)
	assert.Equal(t, 15*time.Minute, cfg.WatchInterval)
	assert.Equal(t, 24, cfg.WatchHours)
	assert.Equal(t, 96, cfg.WatchHistory)
	assert.Equal(t, 24*time.Hour, cfg.WatchRetention)
	assert.Equal(t, 4, cfg.CompareConcurrency)
	assert.Empty(t, cfg.Locations)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("OPEN_METEO_FORECAST_URL", "http://localhost:8081/v1")
	t.Setenv("WATCH_INTERVAL", "5m")
	t.Setenv("WATCH_LOCATIONS", "Zermatt:45.9763:7.6586, Bern:46.9479:7.4474")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "http://localhost:8081/v1", cfg.ForecastURL)
	assert.Equal(t, 5*time.Minute, cfg.WatchInterval)
	assert.Equal(t, []weather.Location{
		{Name: "Zermatt", Latitude: 45.9763, Longitude: 7.6586},
		{Name: "Bern", Latitude: 46.9479, Longitude: 7.4474},
	}, cfg.Locations)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"LOG_FORMAT", "xml"},
		{"LOG_LEVEL", "verbose"},
		{"PORT", "http"},
		{"HTTP_TIMEOUT", "soon"},
		{"WATCH_INTERVAL", "10s"},
		{"COMPARE_CONCURRENCY", "0"},
		{"OPEN_METEO_MARINE_URL", "not a url"},
		{"WATCH_LOCATIONS", "Bern:46.9"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseLocations(t *testing.T) {
	locs, err := ParseLocations("")
	require.NoError(t, err)
	assert.Empty(t, locs)

	locs, err = ParseLocations(":47.37:8.54,,Lugano:46.0037:8.9511,")
	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.Equal(t, "47.3700,8.5400", locs[0].Key())
	assert.Equal(t, "Lugano", locs[1].Key())

	for _, bad := range []string{"Bern", "Bern:x:7.4", "Bern:46.9:y", "Pole:91:0", "Dateline:0:181", "a:1:2:3"} {
		_, err := ParseLocations(bad)
		assert.Error(t, err, bad)
	}
}
