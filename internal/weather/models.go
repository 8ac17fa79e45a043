package weather

import (
	"encoding/json"
	"fmt"
	"math"
)

// Series is a numeric time series as returned by Open-Meteo. Samples are
// indexed by the same position as the sibling Time slice. JSON null samples
// decode to NaN and NaN encodes back to null, so a missing sample never
// satisfies a threshold comparison.
type Series []float64

// UnmarshalJSON implements json.Unmarshaler.
func (s *Series) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode series: %w", err)
	}
	if raw == nil {
		*s = nil
		return nil
	}

	out := make(Series, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	*s = out
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Series) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	raw := make([]*float64, len(s))
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		v := v
		raw[i] = &v
	}
	return json.Marshal(raw)
}

// At returns the sample at i, or NaN when i is out of range.
func (s Series) At(i int) float64 {
	if i < 0 || i >= len(s) {
		return math.NaN()
	}
	return s[i]
}

// Location is a named coordinate.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Key returns a canonical string key for logging and metric labels.
func (l Location) Key() string {
	if l.Name != "" {
		return l.Name
	}
	return fmt.Sprintf("%.4f,%.4f", l.Latitude, l.Longitude)
}

// CurrentConditions is the single point-in-time snapshot Open-Meteo returns
// under "current_weather". Nil fields are absent upstream.
type CurrentConditions struct {
	Time          string   `json:"time,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`
	WindSpeed     *float64 `json:"windspeed,omitempty"`
	WindDirection *float64 `json:"winddirection,omitempty"`
	WeatherCode   *int     `json:"weathercode,omitempty"`
	IsDay         *int     `json:"is_day,omitempty"`
	UVIndex       *float64 `json:"uv_index,omitempty"`
}

// CurrentBlock holds the variables requested through the "current" query
// parameter.
type CurrentBlock struct {
	Time                     string   `json:"time,omitempty"`
	Interval                 *int     `json:"interval,omitempty"`
	Temperature              *float64 `json:"temperature_2m,omitempty"`
	ApparentTemperature      *float64 `json:"apparent_temperature,omitempty"`
	RelativeHumidity         *float64 `json:"relative_humidity_2m,omitempty"`
	Precipitation            *float64 `json:"precipitation,omitempty"`
	PrecipitationProbability *float64 `json:"precipitation_probability,omitempty"`
	WeatherCode              *int     `json:"weather_code,omitempty"`
	WindSpeed                *float64 `json:"wind_speed_10m,omitempty"`
	WindGusts                *float64 `json:"wind_gusts_10m,omitempty"`
	UVIndex                  *float64 `json:"uv_index,omitempty"`
	IsDay                    *int     `json:"is_day,omitempty"`
}

// HourlySeries holds parallel hourly sequences sharing the Time index.
type HourlySeries struct {
	Time                     []string `json:"time"`
	Temperature              Series   `json:"temperature_2m,omitempty"`
	ApparentTemperature      Series   `json:"apparent_temperature,omitempty"`
	Precipitation            Series   `json:"precipitation,omitempty"`
	PrecipitationProbability Series   `json:"precipitation_probability,omitempty"`
	WeatherCode              Series   `json:"weather_code,omitempty"`
	WindSpeed                Series   `json:"wind_speed_10m,omitempty"`
	WindGusts                Series   `json:"wind_gusts_10m,omitempty"`
	RelativeHumidity         Series   `json:"relative_humidity_2m,omitempty"`
	CloudCover               Series   `json:"cloud_cover,omitempty"`
	Visibility               Series   `json:"visibility,omitempty"`
	UVIndex                  Series   `json:"uv_index,omitempty"`
	IsDay                    Series   `json:"is_day,omitempty"`
}

// DailySeries holds parallel daily sequences sharing the Time index.
type DailySeries struct {
	Time                        []string `json:"time"`
	TemperatureMax              Series   `json:"temperature_2m_max,omitempty"`
	TemperatureMin              Series   `json:"temperature_2m_min,omitempty"`
	PrecipitationSum            Series   `json:"precipitation_sum,omitempty"`
	PrecipitationProbabilityMax Series   `json:"precipitation_probability_max,omitempty"`
	PrecipitationHours          Series   `json:"precipitation_hours,omitempty"`
	WeatherCode                 Series   `json:"weather_code,omitempty"`
	UVIndexMax                  Series   `json:"uv_index_max,omitempty"`
	WindSpeedMax                Series   `json:"wind_speed_10m_max,omitempty"`
	WindGustsMax                Series   `json:"wind_gusts_10m_max,omitempty"`
	Sunrise                     []string `json:"sunrise,omitempty"`
	Sunset                      []string `json:"sunset,omitempty"`
}

// Forecast is the Open-Meteo forecast (and archive) response.
type Forecast struct {
	Latitude             float64            `json:"latitude"`
	Longitude            float64            `json:"longitude"`
	Elevation            *float64           `json:"elevation,omitempty"`
	Timezone             string             `json:"timezone"`
	TimezoneAbbreviation string             `json:"timezone_abbreviation,omitempty"`
	UTCOffsetSeconds     int                `json:"utc_offset_seconds"`
	CurrentWeather       *CurrentConditions `json:"current_weather,omitempty"`
	Current              *CurrentBlock      `json:"current,omitempty"`
	Hourly               *HourlySeries      `json:"hourly,omitempty"`
	Daily                *DailySeries       `json:"daily,omitempty"`
}
