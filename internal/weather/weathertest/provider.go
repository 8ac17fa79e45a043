// Package weathertest provides a scriptable weather.Provider for tests.
package weathertest

import (
	"context"
	"errors"
	"sync"

	"github.com/i474232898/open-meteo-tools/internal/weather"
)

// ErrNotConfigured is returned by Provider methods whose func field is nil.
var ErrNotConfigured = errors.New("weathertest: call not configured")

// Provider is a weather.Provider backed by optional funcs. It records every
// request it receives and is safe for concurrent use.
type Provider struct {
	ForecastFunc       func(ctx context.Context, req weather.ForecastRequest) (*weather.Forecast, error)
	SnowFunc           func(ctx context.Context, req weather.SnowRequest) (*weather.SnowForecast, error)
	AirQualityFunc     func(ctx context.Context, req weather.AirQualityRequest) (*weather.AirQualityForecast, error)
	SearchLocationFunc func(ctx context.Context, req weather.GeocodingRequest) (*weather.GeocodingResponse, error)
	HistoricalFunc     func(ctx context.Context, req weather.HistoricalRequest) (*weather.Forecast, error)
	MarineFunc         func(ctx context.Context, req weather.MarineRequest) (*weather.MarineForecast, error)

	mu                 sync.Mutex
	forecastRequests   []weather.ForecastRequest
	airQualityRequests []weather.AirQualityRequest
	geocodingRequests  []weather.GeocodingRequest
}

var _ weather.Provider = (*Provider)(nil)

func (p *Provider) Forecast(ctx context.Context, req weather.ForecastRequest) (*weather.Forecast, error) {
	p.mu.Lock()
	p.forecastRequests = append(p.forecastRequests, req)
	p.mu.Unlock()
	if p.ForecastFunc == nil {
		return nil, ErrNotConfigured
	}
	return p.ForecastFunc(ctx, req)
}

func (p *Provider) Snow(ctx context.Context, req weather.SnowRequest) (*weather.SnowForecast, error) {
	if p.SnowFunc == nil {
		return nil, ErrNotConfigured
	}
	return p.SnowFunc(ctx, req)
}

func (p *Provider) AirQuality(ctx context.Context, req weather.AirQualityRequest) (*weather.AirQualityForecast, error) {
	p.mu.Lock()
	p.airQualityRequests = append(p.airQualityRequests, req)
	p.mu.Unlock()
	if p.AirQualityFunc == nil {
		return nil, ErrNotConfigured
	}
	return p.AirQualityFunc(ctx, req)
}

func (p *Provider) SearchLocation(ctx context.Context, req weather.GeocodingRequest) (*weather.GeocodingResponse, error) {
	p.mu.Lock()
	p.geocodingRequests = append(p.geocodingRequests, req)
	p.mu.Unlock()
	if p.SearchLocationFunc == nil {
		return nil, ErrNotConfigured
	}
	return p.SearchLocationFunc(ctx, req)
}

func (p *Provider) Historical(ctx context.Context, req weather.HistoricalRequest) (*weather.Forecast, error) {
	if p.HistoricalFunc == nil {
		return nil, ErrNotConfigured
	}
	return p.HistoricalFunc(ctx, req)
}

func (p *Provider) Marine(ctx context.Context, req weather.MarineRequest) (*weather.MarineForecast, error) {
	if p.MarineFunc == nil {
		return nil, ErrNotConfigured
	}
	return p.MarineFunc(ctx, req)
}

// ForecastRequests returns the forecast requests seen so far.
func (p *Provider) ForecastRequests() []weather.ForecastRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]weather.ForecastRequest(nil), p.forecastRequests...)
}

// AirQualityRequests returns the air-quality requests seen so far.
func (p *Provider) AirQualityRequests() []weather.AirQualityRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]weather.AirQualityRequest(nil), p.airQualityRequests...)
}

// GeocodingRequests returns the geocoding requests seen so far.
func (p *Provider) GeocodingRequests() []weather.GeocodingRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]weather.GeocodingRequest(nil), p.geocodingRequests...)
}

// StaticForecast returns a ForecastFunc that always answers f.
func StaticForecast(f *weather.Forecast) func(context.Context, weather.ForecastRequest) (*weather.Forecast, error) {
	return func(context.Context, weather.ForecastRequest) (*weather.Forecast, error) {
		cp := *f
		return &cp, nil
	}
}

// StaticAirQuality returns an AirQualityFunc reporting a fixed European AQI.
func StaticAirQuality(aqi float64) func(context.Context, weather.AirQualityRequest) (*weather.AirQualityForecast, error) {
	return func(context.Context, weather.AirQualityRequest) (*weather.AirQualityForecast, error) {
		return &weather.AirQualityForecast{Current: &weather.AirQualityCurrent{EuropeanAQI: &aqi}}, nil
	}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
