package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/open-meteo-tools/internal/observability"
	"github.com/i474232898/open-meteo-tools/internal/weather"
	"github.com/sony/gobreaker"
)

// Endpoint families. Each has its own circuit breaker and metric label.
const (
	endpointForecast   = "forecast"
	endpointAirQuality = "air_quality"
	endpointGeocoding  = "geocoding"
	endpointArchive    = "archive"
	endpointMarine     = "marine"
)

const (
	forecastHourlyVars  = "temperature_2m,apparent_temperature,precipitation,precipitation_probability,weather_code,wind_speed_10m,wind_gusts_10m,relative_humidity_2m,cloud_cover,visibility,uv_index,is_day"
	forecastDailyVars   = "temperature_2m_max,temperature_2m_min,precipitation_sum,precipitation_probability_max,precipitation_hours,weather_code,sunrise,sunset,uv_index_max,wind_speed_10m_max,wind_gusts_10m_max"
	forecastCurrentVars = "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation,precipitation_probability,weather_code,wind_speed_10m,wind_gusts_10m,uv_index,is_day"

	snowHourlyVars = "snowfall,snow_depth,temperature_2m,apparent_temperature,weather_code,wind_speed_10m,wind_gusts_10m,cloud_cover,precipitation_probability"
	snowDailyVars  = "snowfall_sum,snow_depth_max,temperature_2m_max,temperature_2m_min,precipitation_probability_max,wind_gusts_10m_max"

	airCurrentVars = "european_aqi,us_aqi,pm10,pm2_5,uv_index"
	airHourlyVars  = "european_aqi,us_aqi,pm10,pm2_5,carbon_monoxide,nitrogen_dioxide,sulphur_dioxide,ozone,dust,uv_index,uv_index_clear_sky,ammonia"
	airPollenVars  = "alder_pollen,birch_pollen,grass_pollen,mugwort_pollen,olive_pollen,ragweed_pollen"

	archiveDailyVars  = "temperature_2m_max,temperature_2m_min,precipitation_sum,precipitation_probability_max,weather_code,wind_speed_10m_max,wind_gusts_10m_max,uv_index_max"
	archiveHourlyVars = "temperature_2m,precipitation,weather_code,wind_speed_10m,relative_humidity_2m,cloud_cover"

	marineHourlyVars = "wave_height,wave_direction,wave_period,wind_wave_height,wind_wave_direction,wind_wave_period,swell_wave_height,swell_wave_direction,swell_wave_period"
	marineDailyVars  = "wave_height_max,wave_direction_dominant,wave_period_max,swell_wave_height_max,swell_wave_direction_dominant,swell_wave_period_max"
)

// Limits Open-Meteo enforces on request parameters.
const (
	MaxForecastDays   = 16
	MaxAirQualityDays = 5
	MaxGeocodingCount = 100

	defaultTimezone     = "auto"
	defaultSnowTimezone = "Europe/Zurich"
	defaultLanguage     = "en"
)

// OpenMeteoConfig holds the base URL of each API and the request policy.
type OpenMeteoConfig struct {
	ForecastURL   string
	AirQualityURL string
	GeocodingURL  string
	ArchiveURL    string
	MarineURL     string
	UserAgent     string
	Backoff       BackoffConfig
}

// DefaultOpenMeteoConfig points at the public Open-Meteo hosts.
func DefaultOpenMeteoConfig() OpenMeteoConfig {
	return OpenMeteoConfig{
		ForecastURL:   "https://api.open-meteo.com/v1",
		AirQualityURL: "https://air-quality-api.open-meteo.com/v1",
		GeocodingURL:  "https://geocoding-api.open-meteo.com/v1",
		ArchiveURL:    "https://archive-api.open-meteo.com/v1",
		MarineURL:     "https://marine-api.open-meteo.com/v1",
		UserAgent:     "open-meteo-tools/1.0",
		Backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
	}
}

// OpenMeteoProvider implements weather.Provider against the Open-Meteo APIs.
type OpenMeteoProvider struct {
	cfg      OpenMeteoConfig
	httpCfg  HTTPClientConfig
	breakers map[string]*gobreaker.CircuitBreaker
	logger   *slog.Logger
	metrics  *observability.Metrics
}

var _ weather.Provider = (*OpenMeteoProvider)(nil)

// NewOpenMeteoProvider creates a provider sharing client across all endpoints.
func NewOpenMeteoProvider(client *http.Client, cfg OpenMeteoConfig, logger *slog.Logger, metrics *observability.Metrics) *OpenMeteoProvider {
	breakers := make(map[string]*gobreaker.CircuitBreaker, 5)
	for _, name := range []string{endpointForecast, endpointAirQuality, endpointGeocoding, endpointArchive, endpointMarine} {
		breakers[name] = newCircuitBreaker("openmeteo-" + name)
	}

	return &OpenMeteoProvider{
		cfg: cfg,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: cfg.Backoff,
		},
		breakers: breakers,
		logger:   logger.With("component", "openmeteo"),
		metrics:  metrics,
	}
}

// Forecast fetches current conditions with daily and optional hourly forecasts.
func (p *OpenMeteoProvider) Forecast(ctx context.Context, req weather.ForecastRequest) (*weather.Forecast, error) {
	params := coordinates(req.Latitude, req.Longitude)
	params.Set("forecast_days", strconv.Itoa(clamp(req.ForecastDays, 1, MaxForecastDays)))
	params.Set("timezone", orDefault(req.Timezone, defaultTimezone))
	params.Set("current_weather", "true")
	params.Set("daily", forecastDailyVars)
	if req.IncludeHourly {
		params.Set("hourly", forecastHourlyVars)
	}
	if req.IncludeCurrent {
		params.Set("current", forecastCurrentVars)
	}

	var out weather.Forecast
	if err := p.getJSON(ctx, endpointForecast, p.cfg.ForecastURL+"/forecast", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Snow fetches snow depth and snowfall. The timezone defaults to Europe/Zurich.
func (p *OpenMeteoProvider) Snow(ctx context.Context, req weather.SnowRequest) (*weather.SnowForecast, error) {
	params := coordinates(req.Latitude, req.Longitude)
	params.Set("forecast_days", strconv.Itoa(clamp(req.ForecastDays, 1, MaxForecastDays)))
	params.Set("timezone", orDefault(req.Timezone, defaultSnowTimezone))
	params.Set("daily", snowDailyVars)
	if req.IncludeHourly {
		params.Set("hourly", snowHourlyVars)
	}

	var out weather.SnowForecast
	if err := p.getJSON(ctx, endpointForecast, p.cfg.ForecastURL+"/forecast", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AirQuality fetches pollutant forecasts, plus pollen when requested.
func (p *OpenMeteoProvider) AirQuality(ctx context.Context, req weather.AirQualityRequest) (*weather.AirQualityForecast, error) {
	hourly := airHourlyVars
	if req.IncludePollen {
		hourly += "," + airPollenVars
	}

	params := coordinates(req.Latitude, req.Longitude)
	params.Set("forecast_days", strconv.Itoa(clamp(req.ForecastDays, 1, MaxAirQualityDays)))
	params.Set("timezone", orDefault(req.Timezone, defaultTimezone))
	params.Set("current", airCurrentVars)
	params.Set("hourly", hourly)

	var out weather.AirQualityForecast
	if err := p.getJSON(ctx, endpointAirQuality, p.cfg.AirQualityURL+"/air-quality", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchLocation geocodes a name. Open-Meteo treats country as a bias only,
// so results are filtered to that country whenever at least one matches.
func (p *OpenMeteoProvider) SearchLocation(ctx context.Context, req weather.GeocodingRequest) (*weather.GeocodingResponse, error) {
	params := url.Values{}
	params.Set("name", req.Name)
	params.Set("count", strconv.Itoa(clamp(req.Count, 1, MaxGeocodingCount)))
	params.Set("language", orDefault(req.Language, defaultLanguage))
	params.Set("format", "json")
	if req.Country != "" {
		params.Set("country", req.Country)
	}

	var out weather.GeocodingResponse
	if err := p.getJSON(ctx, endpointGeocoding, p.cfg.GeocodingURL+"/search", params, &out); err != nil {
		return nil, err
	}
	if out.Results == nil {
		out.Results = []weather.GeoLocation{}
	}

	if req.Country != "" && len(out.Results) > 0 {
		filtered := make([]weather.GeoLocation, 0, len(out.Results))
		for _, r := range out.Results {
			if strings.EqualFold(r.CountryCode, req.Country) {
				filtered = append(filtered, r)
			}
		}
		if len(filtered) > 0 {
			p.logger.DebugContext(ctx, "geocoding results filtered by country",
				"name", req.Name, "country", req.Country, "kept", len(filtered), "total", len(out.Results))
			out.Results = filtered
		}
	}
	return &out, nil
}

// Historical fetches archived daily, and optionally hourly, weather.
func (p *OpenMeteoProvider) Historical(ctx context.Context, req weather.HistoricalRequest) (*weather.Forecast, error) {
	params := coordinates(req.Latitude, req.Longitude)
	params.Set("start_date", req.StartDate)
	params.Set("end_date", req.EndDate)
	params.Set("timezone", orDefault(req.Timezone, defaultTimezone))
	params.Set("daily", archiveDailyVars)
	if req.IncludeHourly {
		params.Set("hourly", archiveHourlyVars)
	}

	var out weather.Forecast
	if err := p.getJSON(ctx, endpointArchive, p.cfg.ArchiveURL+"/archive", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Marine fetches wave and swell forecasts.
func (p *OpenMeteoProvider) Marine(ctx context.Context, req weather.MarineRequest) (*weather.MarineForecast, error) {
	params := coordinates(req.Latitude, req.Longitude)
	params.Set("forecast_days", strconv.Itoa(clamp(req.ForecastDays, 1, MaxForecastDays)))
	params.Set("timezone", orDefault(req.Timezone, defaultTimezone))
	params.Set("daily", marineDailyVars)
	if req.IncludeHourly {
		params.Set("hourly", marineHourlyVars)
	}

	var out weather.MarineForecast
	if err := p.getJSON(ctx, endpointMarine, p.cfg.MarineURL+"/marine", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *OpenMeteoProvider) getJSON(ctx context.Context, endpoint, rawURL string, params url.Values, out any) error {
	fullURL := rawURL + "?" + params.Encode()
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if p.cfg.UserAgent != "" {
			req.Header.Set("User-Agent", p.cfg.UserAgent)
		}
		return req, nil
	}

	start := time.Now()
	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.breakers[endpoint], buildRequest)
	p.metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		p.metrics.UpstreamRequests.WithLabelValues(endpoint, outcomeOf(err)).Inc()
		p.logger.WarnContext(ctx, "open-meteo request failed", "endpoint", endpoint, "error", err)
		return fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		p.metrics.UpstreamRequests.WithLabelValues(endpoint, "decode_error").Inc()
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	p.metrics.UpstreamRequests.WithLabelValues(endpoint, "success").Inc()
	p.logger.DebugContext(ctx, "open-meteo request completed", "endpoint", endpoint, "duration", time.Since(start))
	return nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrUpstream):
		return "upstream_error"
	default:
		return "error"
	}
}

func coordinates(lat, lon float64) url.Values {
	v := url.Values{}
	v.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	v.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	return v
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
