package weather

import (
	"fmt"
	"sort"
)

// Category groups WMO weather codes by kind of weather.
type Category string

const (
	CategoryClear        Category = "Clear"
	CategoryCloudy       Category = "Cloudy"
	CategoryFog          Category = "Fog"
	CategoryDrizzle      Category = "Drizzle"
	CategoryRain         Category = "Rain"
	CategorySnow         Category = "Snow"
	CategoryThunderstorm Category = "Thunderstorm"
	CategoryUnknown      Category = "Unknown"
)

// Severity is the intrinsic severity of a weather code.
type Severity string

const (
	SeverityNone    Severity = "none"
	SeverityLow     Severity = "low"
	SeverityMedium  Severity = "medium"
	SeverityHigh    Severity = "high"
	SeverityExtreme Severity = "extreme"
	SeverityUnknown Severity = "unknown"
)

// WeatherCodeInfo describes one WMO weather code.
type WeatherCodeInfo struct {
	Code        int      `json:"code"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
}

var weatherCodes = map[int]WeatherCodeInfo{
	0:  {0, "Clear sky", CategoryClear, SeverityNone},
	1:  {1, "Mainly clear", CategoryClear, SeverityNone},
	2:  {2, "Partly cloudy", CategoryCloudy, SeverityLow},
	3:  {3, "Overcast", CategoryCloudy, SeverityLow},
	45: {45, "Fog", CategoryFog, SeverityMedium},
	48: {48, "Depositing rime fog", CategoryFog, SeverityMedium},
	51: {51, "Light drizzle", CategoryDrizzle, SeverityLow},
	53: {53, "Moderate drizzle", CategoryDrizzle, SeverityLow},
	55: {55, "Dense drizzle", CategoryDrizzle, SeverityMedium},
	61: {61, "Slight rain", CategoryRain, SeverityLow},
	63: {63, "Moderate rain", CategoryRain, SeverityMedium},
	65: {65, "Heavy rain", CategoryRain, SeverityHigh},
	71: {71, "Slight snow", CategorySnow, SeverityLow},
	73: {73, "Moderate snow", CategorySnow, SeverityMedium},
	75: {75, "Heavy snow", CategorySnow, SeverityHigh},
	77: {77, "Snow grains", CategorySnow, SeverityMedium},
	80: {80, "Slight rain showers", CategoryRain, SeverityLow},
	81: {81, "Moderate rain showers", CategoryRain, SeverityMedium},
	82: {82, "Violent rain showers", CategoryRain, SeverityHigh},
	85: {85, "Slight snow showers", CategorySnow, SeverityLow},
	86: {86, "Heavy snow showers", CategorySnow, SeverityHigh},
	95: {95, "Thunderstorm", CategoryThunderstorm, SeverityHigh},
	96: {96, "Thunderstorm with slight hail", CategoryThunderstorm, SeverityHigh},
	99: {99, "Thunderstorm with heavy hail", CategoryThunderstorm, SeverityExtreme},
}

var travelImpacts = map[Severity]string{
	SeverityNone:    "none",
	SeverityLow:     "minor",
	SeverityMedium:  "moderate",
	SeverityHigh:    "significant",
	SeverityExtreme: "severe",
}

// LookupWeatherCode returns the table entry for code. Codes outside the table
// map to an Unknown entry; the lookup never fails.
func LookupWeatherCode(code int) WeatherCodeInfo {
	if info, ok := weatherCodes[code]; ok {
		return info
	}
	return WeatherCodeInfo{
		Code:        code,
		Description: fmt.Sprintf("Unknown weather code: %d", code),
		Category:    CategoryUnknown,
		Severity:    SeverityUnknown,
	}
}

// CategoryOf returns the category of code.
func CategoryOf(code int) Category {
	return LookupWeatherCode(code).Category
}

// TravelImpact maps the severity of code to a travel impact label.
func TravelImpact(code int) string {
	if impact, ok := travelImpacts[LookupWeatherCode(code).Severity]; ok {
		return impact
	}
	return "unknown"
}

// WeatherCodes returns every known code ordered by code.
func WeatherCodes() []WeatherCodeInfo {
	out := make([]WeatherCodeInfo, 0, len(weatherCodes))
	for _, info := range weatherCodes {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
