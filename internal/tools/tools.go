package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/i474232898/open-meteo-tools/internal/weather"
)

const (
	defaultForecastDays   = 7
	defaultAirQualityDays = 5
	defaultAlertHours     = 24
	defaultSearchCount    = 10
	maxSwissSearchCount   = 50
	defaultTimezone       = "auto"
	swissTimezone         = "Europe/Zurich"
	defaultLanguage       = "en"
	isoDate               = "2006-01-02"
)

// ForecastInput is shared by the forecast-shaped tools.
type ForecastInput struct {
	Latitude      *float64 `json:"latitude" jsonschema:"Latitude in decimal degrees, e.g. 46.9479 for Bern" validate:"required,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude" jsonschema:"Longitude in decimal degrees, e.g. 7.4474 for Bern" validate:"required,gte=-180,lte=180"`
	ForecastDays  int      `json:"forecast_days,omitempty" jsonschema:"Number of forecast days (1-16, default 7)"`
	IncludeHourly bool     `json:"include_hourly,omitempty" jsonschema:"Include hourly series (default true)"`
	Timezone      string   `json:"timezone,omitempty" jsonschema:"IANA timezone for timestamps, or auto"`
}

// SearchInput searches locations by name.
type SearchInput struct {
	Name     string `json:"name" jsonschema:"Location name, e.g. Zurich or Matterhorn" validate:"required"`
	Count    int    `json:"count,omitempty" jsonschema:"Maximum number of results (1-100, default 10)"`
	Language string `json:"language,omitempty" jsonschema:"Result language code (default en)"`
	Country  string `json:"country,omitempty" jsonschema:"ISO 3166-1 alpha-2 country filter, e.g. CH" validate:"omitempty,len=2,alpha"`
}

// SwissSearchInput searches Swiss locations.
type SwissSearchInput struct {
	Name            string `json:"name" jsonschema:"Swiss location name" validate:"required"`
	IncludeFeatures bool   `json:"include_features,omitempty" jsonschema:"Also return mountains, passes and lakes (default false)"`
	Language        string `json:"language,omitempty" jsonschema:"Result language code: en, de, fr or it (default en)"`
	Count           int    `json:"count,omitempty" jsonschema:"Maximum number of results (1-50, default 10)"`
}

// AirQualityInput asks for an air-quality forecast.
type AirQualityInput struct {
	Latitude      *float64 `json:"latitude" jsonschema:"Latitude in decimal degrees" validate:"required,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude" jsonschema:"Longitude in decimal degrees" validate:"required,gte=-180,lte=180"`
	ForecastDays  int      `json:"forecast_days,omitempty" jsonschema:"Number of forecast days (1-5, default 5)"`
	IncludePollen bool     `json:"include_pollen,omitempty" jsonschema:"Include pollen counts, Europe only (default true)"`
	Timezone      string   `json:"timezone,omitempty" jsonschema:"IANA timezone for timestamps, or auto"`
}

// AlertsInput asks for weather alerts over the next hours.
type AlertsInput struct {
	Latitude      *float64 `json:"latitude" jsonschema:"Latitude in decimal degrees" validate:"required,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude" jsonschema:"Longitude in decimal degrees" validate:"required,gte=-180,lte=180"`
	ForecastHours int      `json:"forecast_hours,omitempty" jsonschema:"Hours ahead to analyse (1-168, default 24)"`
	Timezone      string   `json:"timezone,omitempty" jsonschema:"IANA timezone for timestamps, or auto"`
}

// HistoricalInput asks for archived weather between two dates.
type HistoricalInput struct {
	Latitude      *float64 `json:"latitude" jsonschema:"Latitude in decimal degrees" validate:"required,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude" jsonschema:"Longitude in decimal degrees" validate:"required,gte=-180,lte=180"`
	StartDate     string   `json:"start_date" jsonschema:"First day, YYYY-MM-DD" validate:"required,datetime=2006-01-02"`
	EndDate       string   `json:"end_date" jsonschema:"Last day, YYYY-MM-DD" validate:"required,datetime=2006-01-02"`
	IncludeHourly bool     `json:"include_hourly,omitempty" jsonschema:"Include hourly series (default false)"`
	Timezone      string   `json:"timezone,omitempty" jsonschema:"IANA timezone for timestamps, or auto"`
}

// PointInput identifies a coordinate.
type PointInput struct {
	Latitude  *float64 `json:"latitude" jsonschema:"Latitude in decimal degrees" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" jsonschema:"Longitude in decimal degrees" validate:"required,gte=-180,lte=180"`
	Timezone  string   `json:"timezone,omitempty" jsonschema:"IANA timezone, or auto to use the location's own"`
}

// CompareLocation is one location in a comparison.
type CompareLocation struct {
	Name      string   `json:"name,omitempty" jsonschema:"Display name"`
	Latitude  *float64 `json:"latitude" jsonschema:"Latitude in decimal degrees" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" jsonschema:"Longitude in decimal degrees" validate:"required,gte=-180,lte=180"`
}

// CompareInput ranks several locations.
type CompareInput struct {
	Locations    []CompareLocation `json:"locations" jsonschema:"Locations to compare" validate:"required,min=1,max=10,dive"`
	Criteria     string            `json:"criteria,omitempty" jsonschema:"best_overall, warmest, driest, sunniest, best_air_quality or calmest (default best_overall)"`
	ForecastDays int               `json:"forecast_days,omitempty" jsonschema:"Forecast days to fetch (1-16, default 1)"`
}

func forecastDefaults(timezone string) func() ForecastInput {
	return func() ForecastInput {
		return ForecastInput{ForecastDays: defaultForecastDays, IncludeHourly: true, Timezone: timezone}
	}
}

func alertDefaults() AlertsInput {
	return AlertsInput{ForecastHours: defaultAlertHours, Timezone: defaultTimezone}
}

func pointDefaults() PointInput {
	return PointInput{Timezone: defaultTimezone}
}

// New returns the full tool set backed by svc.
func New(svc *weather.Service) []Tool {
	return []Tool{
		newTool("meteo__get_weather",
			"Weather forecast for a coordinate: current conditions with an interpreted weather code and travel impact, daily and optional hourly forecasts.",
			forecastDefaults(defaultTimezone),
			func(ctx context.Context, in ForecastInput) (any, error) {
				return svc.GetWeather(ctx, weather.ForecastRequest{
					Latitude:      *in.Latitude,
					Longitude:     *in.Longitude,
					ForecastDays:  in.ForecastDays,
					IncludeHourly: in.IncludeHourly,
					Timezone:      in.Timezone,
				})
			}),

		newTool("meteo__get_snow_conditions",
			"Snow depth, snowfall and mountain temperatures for a coordinate, with a ski-conditions grade and seasonal advice.",
			forecastDefaults(swissTimezone),
			func(ctx context.Context, in ForecastInput) (any, error) {
				return svc.GetSnowConditions(ctx, weather.SnowRequest{
					Latitude:      *in.Latitude,
					Longitude:     *in.Longitude,
					ForecastDays:  in.ForecastDays,
					IncludeHourly: in.IncludeHourly,
					Timezone:      in.Timezone,
				})
			}),

		newTool("meteo__search_location",
			"Find coordinates for a place name worldwide, optionally restricted to one country.",
			func() SearchInput { return SearchInput{Count: defaultSearchCount, Language: defaultLanguage} },
			func(ctx context.Context, in SearchInput) (any, error) {
				return svc.SearchLocation(ctx, weather.GeocodingRequest{
					Name:     in.Name,
					Count:    in.Count,
					Language: in.Language,
					Country:  in.Country,
				})
			}),

		newTool("meteo__search_location_swiss",
			"Find Swiss places by name, largest first. Mountains, passes and lakes are only returned with include_features.",
			func() SwissSearchInput { return SwissSearchInput{Count: defaultSearchCount, Language: defaultLanguage} },
			func(ctx context.Context, in SwissSearchInput) (any, error) {
				return svc.SearchLocationSwiss(ctx, weather.SwissSearchRequest{
					Name:            in.Name,
					IncludeFeatures: in.IncludeFeatures,
					Language:        in.Language,
					Count:           max(1, min(in.Count, maxSwissSearchCount)),
				})
			}),

		newTool("meteo__get_air_quality",
			"Air-quality forecast for a coordinate: European and US AQI, particulate matter, gases, UV and optional pollen.",
			func() AirQualityInput {
				return AirQualityInput{ForecastDays: defaultAirQualityDays, IncludePollen: true, Timezone: defaultTimezone}
			},
			func(ctx context.Context, in AirQualityInput) (any, error) {
				return svc.GetAirQuality(ctx, weather.AirQualityRequest{
					Latitude:      *in.Latitude,
					Longitude:     *in.Longitude,
					ForecastDays:  in.ForecastDays,
					IncludePollen: in.IncludePollen,
					Timezone:      in.Timezone,
				})
			}),

		newTool("meteo__get_weather_alerts",
			"Heat, cold, wind, storm, UV, air-quality and heavy-precipitation alerts for the next hours, with a summary and recommendations.",
			alertDefaults,
			func(ctx context.Context, in AlertsInput) (any, error) {
				return svc.GetWeatherAlerts(ctx, *in.Latitude, *in.Longitude, in.ForecastHours, in.Timezone)
			}),

		newTool("meteo__get_forecast_alerts",
			"Alerts derived from the hourly forecast series: sustained heat, cold, storm gusts, high UV and strong wind windows.",
			alertDefaults,
			func(ctx context.Context, in AlertsInput) (any, error) {
				return svc.GetForecastAlerts(ctx, *in.Latitude, *in.Longitude, in.ForecastHours, in.Timezone)
			}),

		newTool("meteo__get_historical_weather",
			"Archived weather between two dates (YYYY-MM-DD) for a coordinate, with daily summaries and optional hourly data.",
			func() HistoricalInput { return HistoricalInput{Timezone: defaultTimezone} },
			func(ctx context.Context, in HistoricalInput) (any, error) {
				if err := checkDateRange(in.StartDate, in.EndDate); err != nil {
					return nil, err
				}
				return svc.GetHistoricalWeather(ctx, weather.HistoricalRequest{
					Latitude:      *in.Latitude,
					Longitude:     *in.Longitude,
					StartDate:     in.StartDate,
					EndDate:       in.EndDate,
					IncludeHourly: in.IncludeHourly,
					Timezone:      in.Timezone,
				})
			}),

		newTool("meteo__get_marine_conditions",
			"Wave height, direction and period plus swell forecasts for a coastal or lake coordinate.",
			forecastDefaults(defaultTimezone),
			func(ctx context.Context, in ForecastInput) (any, error) {
				return svc.GetMarineConditions(ctx, weather.MarineRequest{
					Latitude:      *in.Latitude,
					Longitude:     *in.Longitude,
					ForecastDays:  in.ForecastDays,
					IncludeHourly: in.IncludeHourly,
					Timezone:      in.Timezone,
				})
			}),

		newTool("meteo__get_comfort_index",
			"Outdoor comfort score from 0 to 100 combining temperature, air quality, precipitation risk, UV and current weather.",
			pointDefaults,
			func(ctx context.Context, in PointInput) (any, error) {
				return svc.GetComfortIndex(ctx, *in.Latitude, *in.Longitude, in.Timezone)
			}),

		newTool("meteo__get_astronomy",
			"Approximate sunrise, sunset, day length, golden hour and blue hour for today at a coordinate.",
			pointDefaults,
			func(ctx context.Context, in PointInput) (any, error) {
				return svc.GetAstronomy(ctx, *in.Latitude, *in.Longitude, in.Timezone)
			}),

		newTool("meteo__compare_locations",
			"Compare current conditions across up to 10 locations and rank them by a criteria.",
			func() CompareInput {
				return CompareInput{Criteria: string(weather.CriteriaBestOverall), ForecastDays: 1}
			},
			func(ctx context.Context, in CompareInput) (any, error) {
				locations := make([]weather.Location, len(in.Locations))
				for i, l := range in.Locations {
					locations[i] = weather.Location{Name: l.Name, Latitude: *l.Latitude, Longitude: *l.Longitude}
				}
				return svc.CompareLocations(ctx, locations, in.Criteria, in.ForecastDays)
			}),
	}
}

func checkDateRange(start, end string) error {
	from, err := time.Parse(isoDate, start)
	if err != nil {
		return fmt.Errorf("%w: start_date: %v", ErrBadParameter, err)
	}
	to, err := time.Parse(isoDate, end)
	if err != nil {
		return fmt.Errorf("%w: end_date: %v", ErrBadParameter, err)
	}
	if to.Before(from) {
		return fmt.Errorf("%w: end_date %s is before start_date %s", ErrBadParameter, end, start)
	}
	return nil
}
