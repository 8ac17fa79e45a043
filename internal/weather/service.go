package weather

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/i474232898/open-meteo-tools/internal/observability"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

const (
	swissCountryCode     = "CH"
	maxAlertHours        = 168
	maxAirQualityDays    = 5
	maxForecastDays      = 16
	defaultCompareWorker = 4
)

// Service composes the Open-Meteo provider with the analytics in this package.
type Service struct {
	provider           Provider
	clock              clockwork.Clock
	logger             *slog.Logger
	metrics            *observability.Metrics
	compareConcurrency int
}

// NewService creates a new Service. compareConcurrency bounds how many
// locations CompareLocations fetches at once.
func NewService(provider Provider, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics, compareConcurrency int) *Service {
	if compareConcurrency <= 0 {
		compareConcurrency = defaultCompareWorker
	}
	return &Service{
		provider:           provider,
		clock:              clock,
		logger:             logger,
		metrics:            metrics,
		compareConcurrency: compareConcurrency,
	}
}

// WeatherInterpretation explains the current weather code.
type WeatherInterpretation struct {
	WeatherCodeInfo
	TravelImpact  string `json:"travel_impact"`
	Temperature   string `json:"temperature,omitempty"`
	Precipitation string `json:"precipitation,omitempty"`
}

// WeatherReport is a forecast with the current code interpreted.
type WeatherReport struct {
	*Forecast
	Interpretation *WeatherInterpretation `json:"interpretation,omitempty"`
}

// GetWeather fetches a forecast and interprets its current weather code.
func (s *Service) GetWeather(ctx context.Context, req ForecastRequest) (*WeatherReport, error) {
	f, err := s.provider.Forecast(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("get weather: %w", err)
	}

	report := &WeatherReport{Forecast: f}
	if f.CurrentWeather != nil && f.CurrentWeather.WeatherCode != nil {
		code := *f.CurrentWeather.WeatherCode
		interp := &WeatherInterpretation{
			WeatherCodeInfo: LookupWeatherCode(code),
			TravelImpact:    TravelImpact(code),
		}
		if t := f.CurrentWeather.Temperature; t != nil {
			interp.Temperature = FormatTemperature(*t)
		}
		if f.Current != nil && f.Current.Precipitation != nil {
			interp.Precipitation = FormatPrecipitation(*f.Current.Precipitation)
		}
		report.Interpretation = interp
	}
	return report, nil
}

// SnowReport is a snow forecast with a ski grade and seasonal advice.
type SnowReport struct {
	*SnowForecast
	SkiAssessment  SkiAssessment `json:"ski_assessment"`
	SeasonalAdvice string        `json:"seasonal_advice"`
}

// GetSnowConditions fetches a snow forecast and grades skiing conditions.
func (s *Service) GetSnowConditions(ctx context.Context, req SnowRequest) (*SnowReport, error) {
	f, err := s.provider.Snow(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("get snow conditions: %w", err)
	}
	return &SnowReport{
		SnowForecast:   f,
		SkiAssessment:  AssessSnowForecast(*f),
		SeasonalAdvice: SeasonalAdvice(s.clock.Now().Month()),
	}, nil
}

// SearchLocation geocodes a name.
func (s *Service) SearchLocation(ctx context.Context, req GeocodingRequest) (*GeocodingResponse, error) {
	res, err := s.provider.SearchLocation(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search location: %w", err)
	}
	return res, nil
}

// SwissSearchRequest searches Swiss locations.
type SwissSearchRequest struct {
	Name            string
	IncludeFeatures bool
	Language        string
	Count           int
}

// SwissSearchResult lists Swiss matches ordered by population.
type SwissSearchResult struct {
	Query           string        `json:"query"`
	Results         []GeoLocation `json:"results"`
	Total           int           `json:"total"`
	Country         string        `json:"country"`
	IncludeFeatures bool          `json:"include_features"`
	Language        string        `json:"language"`
}

// SearchLocationSwiss searches Switzerland only. Unless IncludeFeatures is
// set, results are narrowed to populated places (feature codes PPL*). Twice
// the requested count is fetched so the filter still leaves enough results.
func (s *Service) SearchLocationSwiss(ctx context.Context, req SwissSearchRequest) (*SwissSearchResult, error) {
	res, err := s.provider.SearchLocation(ctx, GeocodingRequest{
		Name:     req.Name,
		Count:    req.Count * 2,
		Language: req.Language,
		Country:  swissCountryCode,
	})
	if err != nil {
		return nil, fmt.Errorf("search swiss location: %w", err)
	}

	results := make([]GeoLocation, 0, len(res.Results))
	for _, r := range res.Results {
		if req.IncludeFeatures || r.FeatureCode == "" || strings.HasPrefix(r.FeatureCode, "PPL") {
			results = append(results, r)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return population(results[i]) > population(results[j])
	})
	if len(results) > req.Count {
		results = results[:req.Count]
	}

	return &SwissSearchResult{
		Query:           req.Name,
		Results:         results,
		Total:           len(results),
		Country:         swissCountryCode,
		IncludeFeatures: req.IncludeFeatures,
		Language:        req.Language,
	}, nil
}

func population(g GeoLocation) int64 {
	if g.Population == nil {
		return 0
	}
	return *g.Population
}

// GetAirQuality fetches the air-quality forecast.
func (s *Service) GetAirQuality(ctx context.Context, req AirQualityRequest) (*AirQualityForecast, error) {
	aq, err := s.provider.AirQuality(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("get air quality: %w", err)
	}
	return aq, nil
}

// GetHistoricalWeather fetches archived weather.
func (s *Service) GetHistoricalWeather(ctx context.Context, req HistoricalRequest) (*Forecast, error) {
	f, err := s.provider.Historical(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("get historical weather: %w", err)
	}
	return f, nil
}

// GetMarineConditions fetches the marine forecast.
func (s *Service) GetMarineConditions(ctx context.Context, req MarineRequest) (*MarineForecast, error) {
	m, err := s.provider.Marine(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("get marine conditions: %w", err)
	}
	return m, nil
}

// LocatedAlertReport is the snapshot alert report for a coordinate.
type LocatedAlertReport struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	AlertReport
}

// GetWeatherAlerts runs the snapshot alert rules over the current forecast
// and air quality. Air quality is optional: when it cannot be fetched the
// AQI rule is skipped.
func (s *Service) GetWeatherAlerts(ctx context.Context, lat, lon float64, hours int, timezone string) (*LocatedAlertReport, error) {
	hours = max(1, min(hours, maxAlertHours))
	days := max(1, (hours+23)/24)

	var (
		forecast *Forecast
		air      *AirQualityForecast
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		f, err := s.provider.Forecast(gctx, ForecastRequest{
			Latitude: lat, Longitude: lon, ForecastDays: days, IncludeHourly: true, Timezone: timezone,
		})
		if err != nil {
			return fmt.Errorf("get weather alerts: %w", err)
		}
		forecast = f
		return nil
	})
	g.Go(func() error {
		aq, err := s.provider.AirQuality(gctx, AirQualityRequest{
			Latitude: lat, Longitude: lon, ForecastDays: min(days, maxAirQualityDays), Timezone: timezone,
		})
		if err != nil {
			s.logger.WarnContext(ctx, "air quality unavailable for alerts", "latitude", lat, "longitude", lon, "error", err)
			return nil
		}
		air = aq
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var aqi *float64
	if air != nil && air.Current != nil {
		aqi = air.Current.EuropeanAQI
	}

	now := s.clock.Now()
	if loc, err := time.LoadLocation(forecast.Timezone); err == nil {
		now = now.In(loc)
	}

	alerts := GenerateSnapshotAlerts(SnapshotAlertInput{
		Current:       forecast.CurrentWeather,
		Hourly:        forecast.Hourly,
		Daily:         forecast.Daily,
		EuropeanAQI:   aqi,
		ForecastHours: hours,
		Now:           now,
	})
	s.recordAlerts(alerts)

	return &LocatedAlertReport{
		Latitude:    lat,
		Longitude:   lon,
		Timezone:    forecast.Timezone,
		AlertReport: SummarizeAlerts(alerts, forecast.CurrentWeather, aqi, hours, now),
	}, nil
}

// ForecastAlertReport lists the series alerts for a coordinate.
type ForecastAlertReport struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Alerts    []Alert `json:"alerts"`
}

// GetForecastAlerts runs the hourly and daily series alert rules.
func (s *Service) GetForecastAlerts(ctx context.Context, lat, lon float64, hours int, timezone string) (*ForecastAlertReport, error) {
	hours = max(1, min(hours, maxAlertHours))
	f, err := s.provider.Forecast(ctx, ForecastRequest{
		Latitude:      lat,
		Longitude:     lon,
		ForecastDays:  max(1, min(hours/24+1, maxForecastDays)),
		IncludeHourly: true,
		Timezone:      timezone,
	})
	if err != nil {
		return nil, fmt.Errorf("get forecast alerts: %w", err)
	}

	var (
		current CurrentConditions
		hourly  HourlySeries
		daily   DailySeries
	)
	if f.CurrentWeather != nil {
		current = *f.CurrentWeather
	}
	if f.Hourly != nil {
		hourly = *f.Hourly
	}
	if f.Daily != nil {
		daily = *f.Daily
	}

	alerts := GenerateWeatherAlerts(current, hourly, daily, f.Timezone, s.clock.Now())
	s.recordAlerts(alerts)

	return &ForecastAlertReport{
		Latitude:  lat,
		Longitude: lon,
		Timezone:  f.Timezone,
		Alerts:    alerts,
	}, nil
}

// ComfortReport is the comfort index for a coordinate.
type ComfortReport struct {
	Latitude     float64       `json:"latitude"`
	Longitude    float64       `json:"longitude"`
	Timezone     string        `json:"timezone"`
	ComfortIndex ComfortResult `json:"comfort_index"`
}

// GetComfortIndex fetches current weather and air quality concurrently and
// computes the comfort index. A failed air-quality fetch counts as AQI 50.
func (s *Service) GetComfortIndex(ctx context.Context, lat, lon float64, timezone string) (*ComfortReport, error) {
	f, air, err := s.currentWithAir(ctx, lat, lon, 1, timezone)
	if err != nil {
		return nil, fmt.Errorf("get comfort index: %w", err)
	}
	return &ComfortReport{
		Latitude:     lat,
		Longitude:    lon,
		Timezone:     f.Timezone,
		ComfortIndex: CalculateComfortIndex(ComfortInputFromCurrent(f.Current), air),
	}, nil
}

// currentWithAir fetches the forecast with its current block alongside the
// current air quality. Only the forecast is required.
func (s *Service) currentWithAir(ctx context.Context, lat, lon float64, days int, timezone string) (*Forecast, *AirQualityInput, error) {
	var (
		forecast *Forecast
		air      *AirQualityInput
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		f, err := s.provider.Forecast(gctx, ForecastRequest{
			Latitude: lat, Longitude: lon, ForecastDays: days, IncludeCurrent: true, Timezone: timezone,
		})
		if err != nil {
			return err
		}
		forecast = f
		return nil
	})
	g.Go(func() error {
		aq, err := s.provider.AirQuality(gctx, AirQualityRequest{Latitude: lat, Longitude: lon, ForecastDays: 1})
		if err != nil {
			s.logger.WarnContext(ctx, "air quality unavailable", "latitude", lat, "longitude", lon, "error", err)
			return nil
		}
		if aq.Current != nil {
			air = &AirQualityInput{EuropeanAQI: aq.Current.EuropeanAQI}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return forecast, air, nil
}

// AstronomyReport is the astronomy estimate for a coordinate.
type AstronomyReport struct {
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Timezone  string          `json:"timezone"`
	Astronomy AstronomyResult `json:"astronomy"`
}

// GetAstronomy estimates today's solar timings. An empty or "auto" timezone
// is resolved through a forecast request.
func (s *Service) GetAstronomy(ctx context.Context, lat, lon float64, timezone string) (*AstronomyReport, error) {
	if timezone == "" || timezone == "auto" {
		f, err := s.provider.Forecast(ctx, ForecastRequest{Latitude: lat, Longitude: lon, ForecastDays: 1, Timezone: "auto"})
		if err != nil {
			return nil, fmt.Errorf("resolve timezone: %w", err)
		}
		timezone = f.Timezone
	}

	return &AstronomyReport{
		Latitude:  lat,
		Longitude: lon,
		Timezone:  timezone,
		Astronomy: CalculateAstronomy(lat, lon, timezone, s.clock.Now()),
	}, nil
}

// ComparisonResult ranks locations by a criteria.
type ComparisonResult struct {
	Criteria            Criteria          `json:"criteria"`
	Locations           []ComparisonEntry `json:"locations"`
	Winner              *ComparisonEntry  `json:"winner"`
	ComparisonTimestamp string            `json:"comparison_timestamp"`
}

// CompareLocations fetches every location concurrently and ranks them. A
// location that fails to fetch is kept with its error and ranked last.
func (s *Service) CompareLocations(ctx context.Context, locations []Location, criteria string, days int) (*ComparisonResult, error) {
	crit := ParseCriteria(criteria)
	entries := make([]ComparisonEntry, len(locations))

	g := new(errgroup.Group)
	g.SetLimit(s.compareConcurrency)
	for i, loc := range locations {
		g.Go(func() error {
			entries[i] = s.compareEntry(ctx, loc, days)
			return nil
		})
	}
	_ = g.Wait()

	ranked := RankLocations(entries, crit)
	result := &ComparisonResult{
		Criteria:            crit,
		Locations:           ranked,
		ComparisonTimestamp: s.clock.Now().Format(time.RFC3339),
	}
	if len(ranked) > 0 && ranked[0].Error == "" {
		winner := ranked[0]
		result.Winner = &winner
	}
	return result, nil
}

func (s *Service) compareEntry(ctx context.Context, loc Location, days int) ComparisonEntry {
	entry := ComparisonEntry{Name: loc.Key(), Latitude: loc.Latitude, Longitude: loc.Longitude}

	f, air, err := s.currentWithAir(ctx, loc.Latitude, loc.Longitude, days, "auto")
	if err != nil {
		s.logger.WarnContext(ctx, "compare location failed", "location", loc.Key(), "error", err)
		entry.Error = err.Error()
		return entry
	}

	input := ComfortInputFromCurrent(f.Current)
	entry.Temperature = deref(input.Temperature)
	entry.WindSpeed = deref(input.WindSpeed)
	entry.PrecipitationProbability = deref(input.PrecipitationProbability)
	if input.WeatherCode != nil {
		entry.WeatherCode = *input.WeatherCode
	}
	if air != nil {
		entry.AQI = deref(air.EuropeanAQI)
	}

	comfort := CalculateComfortIndex(input, air)
	entry.ComfortIndex = comfort.Overall
	entry.Recommendation = comfort.Recommendation
	return entry
}

func (s *Service) recordAlerts(alerts []Alert) {
	for _, a := range alerts {
		s.metrics.AlertsGenerated.WithLabelValues(string(a.Type), string(a.Severity)).Inc()
	}
}

func deref(v *float64) float64 {
	if v == nil || !isFinite(*v) {
		return 0
	}
	return *v
}
