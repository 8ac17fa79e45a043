package weather

import "sort"

// Criteria selects how RankLocations orders locations.
type Criteria string

const (
	CriteriaBestOverall    Criteria = "best_overall"
	CriteriaWarmest        Criteria = "warmest"
	CriteriaDriest         Criteria = "driest"
	CriteriaSunniest       Criteria = "sunniest"
	CriteriaBestAirQuality Criteria = "best_air_quality"
	CriteriaCalmest        Criteria = "calmest"
)

// ComparisonCriteria lists the supported criteria.
var ComparisonCriteria = []Criteria{
	CriteriaBestOverall, CriteriaWarmest, CriteriaDriest, CriteriaSunniest, CriteriaBestAirQuality, CriteriaCalmest,
}

// ParseCriteria returns the matching criteria, or best_overall for anything unknown.
func ParseCriteria(s string) Criteria {
	for _, c := range ComparisonCriteria {
		if string(c) == s {
			return c
		}
	}
	return CriteriaBestOverall
}

// ComparisonEntry is one location's current conditions in a comparison.
type ComparisonEntry struct {
	Name                     string  `json:"name"`
	Latitude                 float64 `json:"latitude"`
	Longitude                float64 `json:"longitude"`
	Temperature              float64 `json:"temperature"`
	WindSpeed                float64 `json:"wind_speed"`
	WeatherCode              int     `json:"weather_code"`
	PrecipitationProbability float64 `json:"precipitation_probability"`
	ComfortIndex             float64 `json:"comfort_index"`
	AQI                      float64 `json:"aqi"`
	Recommendation           string  `json:"recommendation,omitempty"`
	Error                    string  `json:"error,omitempty"`
}

// RankLocations sorts a copy of entries by criteria. The sort is stable and
// entries carrying an error always come last.
func RankLocations(entries []ComparisonEntry, criteria Criteria) []ComparisonEntry {
	out := append([]ComparisonEntry(nil), entries...)

	var less func(a, b ComparisonEntry) bool
	switch criteria {
	case CriteriaWarmest:
		less = func(a, b ComparisonEntry) bool { return a.Temperature > b.Temperature }
	case CriteriaDriest:
		less = func(a, b ComparisonEntry) bool { return a.PrecipitationProbability < b.PrecipitationProbability }
	case CriteriaSunniest:
		less = func(a, b ComparisonEntry) bool { return a.WeatherCode < b.WeatherCode }
	case CriteriaBestAirQuality:
		less = func(a, b ComparisonEntry) bool { return a.AQI < b.AQI }
	case CriteriaCalmest:
		less = func(a, b ComparisonEntry) bool { return a.WindSpeed < b.WindSpeed }
	default:
		less = func(a, b ComparisonEntry) bool { return a.ComfortIndex > b.ComfortIndex }
	}

	sort.SliceStable(out, func(i, j int) bool {
		ai, bj := out[i], out[j]
		if (ai.Error == "") != (bj.Error == "") {
			return ai.Error == ""
		}
		if ai.Error != "" {
			return false
		}
		return less(ai, bj)
	})
	return out
}
