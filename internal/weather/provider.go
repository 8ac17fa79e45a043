package weather

import "context"

// ForecastRequest asks for current conditions plus daily and optional hourly forecasts.
type ForecastRequest struct {
	Latitude      float64
	Longitude     float64
	ForecastDays  int
	IncludeHourly bool
	// IncludeCurrent also requests the "current" block used by the comfort index.
	IncludeCurrent bool
	Timezone       string
}

// SnowRequest asks for snow depth and snowfall forecasts.
type SnowRequest struct {
	Latitude      float64
	Longitude     float64
	ForecastDays  int
	IncludeHourly bool
	Timezone      string
}

// AirQualityRequest asks for pollutant and optional pollen forecasts.
type AirQualityRequest struct {
	Latitude      float64
	Longitude     float64
	ForecastDays  int
	IncludePollen bool
	Timezone      string
}

// GeocodingRequest searches locations by name. Country, when set, is an ISO
// 3166-1 alpha-2 code.
type GeocodingRequest struct {
	Name     string
	Count    int
	Language string
	Country  string
}

// HistoricalRequest asks for archived weather between two YYYY-MM-DD dates.
type HistoricalRequest struct {
	Latitude      float64
	Longitude     float64
	StartDate     string
	EndDate       string
	IncludeHourly bool
	Timezone      string
}

// MarineRequest asks for wave and swell forecasts.
type MarineRequest struct {
	Latitude      float64
	Longitude     float64
	ForecastDays  int
	IncludeHourly bool
	Timezone      string
}

// Provider abstracts the Open-Meteo family of APIs.
type Provider interface {
	Forecast(ctx context.Context, req ForecastRequest) (*Forecast, error)
	Snow(ctx context.Context, req SnowRequest) (*SnowForecast, error)
	AirQuality(ctx context.Context, req AirQualityRequest) (*AirQualityForecast, error)
	SearchLocation(ctx context.Context, req GeocodingRequest) (*GeocodingResponse, error)
	Historical(ctx context.Context, req HistoricalRequest) (*Forecast, error)
	Marine(ctx context.Context, req MarineRequest) (*MarineForecast, error)
}
