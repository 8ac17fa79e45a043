package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/i474232898/open-meteo-tools/internal/weather"
)

type AppConfig struct {
	Port      string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json text"`

	// HTTPTimeout bounds each outbound Open-Meteo request.
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s" validate:"gt=0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`
	UserAgent       string        `envconfig:"USER_AGENT" default:"open-meteo-tools/1.0" validate:"required"`

	ForecastURL   string `envconfig:"OPEN_METEO_FORECAST_URL" default:"https://api.open-meteo.com/v1" validate:"required,url"`
	AirQualityURL string `envconfig:"OPEN_METEO_AIR_QUALITY_URL" default:"https://air-quality-api.open-meteo.com/v1" validate:"required,url"`
	GeocodingURL  string `envconfig:"OPEN_METEO_GEOCODING_URL" default:"https://geocoding-api.open-meteo.com/v1" validate:"required,url"`
	ArchiveURL    string `envconfig:"OPEN_METEO_ARCHIVE_URL" default:"https://archive-api.open-meteo.com/v1" validate:"required,url"`
	MarineURL     string `envconfig:"OPEN_METEO_MARINE_URL" default:"https://marine-api.open-meteo.com/v1" validate:"required,url"`

	UpstreamMaxRetries int `envconfig:"UPSTREAM_MAX_RETRIES" default:"3" validate:"gte=0,lte=10"`

	// WatchInterval controls how often watched locations are checked for alerts.
	WatchInterval time.Duration `envconfig:"WATCH_INTERVAL" default:"15m" validate:"gte=1m"`
	// WatchLocations is "name:lat:lon,name:lat:lon". Empty disables the watcher.
	WatchLocations string `envconfig:"WATCH_LOCATIONS"`
	// WatchHours is the alert horizon evaluated on each watch run.
	WatchHours int `envconfig:"WATCH_HOURS" default:"24" validate:"gte=1,lte=168"`
	// WatchHistory is how many watch results are kept per location.
	WatchHistory int `envconfig:"WATCH_HISTORY" default:"96" validate:"gte=1"`
	// WatchRetention drops watch results older than this.
	WatchRetention time.Duration `envconfig:"WATCH_RETENTION" default:"24h" validate:"gt=0"`

	CompareConcurrency int `envconfig:"COMPARE_CONCURRENCY" default:"4" validate:"gte=1,lte=32"`

	Locations []weather.Location `ignored:"true"`
}

var validate = validator.New()

// Load reads configuration from the environment (and a .env file when
// present) with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	locs, err := ParseLocations(cfg.WatchLocations)
	if err != nil {
		return nil, fmt.Errorf("invalid WATCH_LOCATIONS: %w", err)
	}
	cfg.Locations = locs

	return cfg, nil
}

// ParseLocations parses "name:lat:lon" entries separated by commas. The name
// may be empty, in which case the location is keyed by its coordinates.
func ParseLocations(s string) ([]weather.Location, error) {
	var locs []weather.Location
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("entry %q: want name:lat:lon", entry)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || lat < -90 || lat > 90 {
			return nil, fmt.Errorf("entry %q: invalid latitude", entry)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil || lon < -180 || lon > 180 {
			return nil, fmt.Errorf("entry %q: invalid longitude", entry)
		}

		locs = append(locs, weather.Location{
			Name:      strings.TrimSpace(parts[0]),
			Latitude:  lat,
			Longitude: lon,
		})
	}
	return locs, nil
}
