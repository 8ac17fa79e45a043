package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(entries []ComparisonEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func comparisonFixture() []ComparisonEntry {
	return []ComparisonEntry{
		{Name: "Zurich", Temperature: 18, WindSpeed: 12, WeatherCode: 3, PrecipitationProbability: 40, ComfortIndex: 70, AQI: 30},
		{Name: "Lugano", Temperature: 24, WindSpeed: 5, WeatherCode: 0, PrecipitationProbability: 10, ComfortIndex: 88, AQI: 45},
		{Name: "Geneva", Error: "upstream unavailable"},
		{Name: "Davos", Temperature: 9, WindSpeed: 25, WeatherCode: 61, PrecipitationProbability: 80, ComfortIndex: 55, AQI: 12},
	}
}

func TestRankLocations(t *testing.T) {
	tests := []struct {
		criteria Criteria
		want     []string
	}{
		{CriteriaBestOverall, []string{"Lugano", "Zurich", "Davos", "Geneva"}},
		{CriteriaWarmest, []string{"Lugano", "Zurich", "Davos", "Geneva"}},
		{CriteriaDriest, []string{"Lugano", "Zurich", "Davos", "Geneva"}},
		{CriteriaSunniest, []string{"Lugano", "Zurich", "Davos", "Geneva"}},
		{CriteriaBestAirQuality, []string{"Davos", "Zurich", "Lugano", "Geneva"}},
		{CriteriaCalmest, []string{"Lugano", "Zurich", "Davos", "Geneva"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.criteria), func(t *testing.T) {
			assert.Equal(t, tt.want, names(RankLocations(comparisonFixture(), tt.criteria)))
		})
	}
}

func TestRankLocations_StableAndNonMutating(t *testing.T) {
	in := []ComparisonEntry{
		{Name: "A", ComfortIndex: 60},
		{Name: "err1", Error: "x"},
		{Name: "B", ComfortIndex: 60},
		{Name: "err2", Error: "y"},
		{Name: "C", ComfortIndex: 61},
	}

	out := RankLocations(in, CriteriaBestOverall)

	assert.Equal(t, []string{"C", "A", "B", "err1", "err2"}, names(out))
	assert.Equal(t, []string{"A", "err1", "B", "err2", "C"}, names(in))
}

func TestParseCriteria(t *testing.T) {
	for _, c := range ComparisonCriteria {
		assert.Equal(t, c, ParseCriteria(string(c)))
	}
	assert.Equal(t, CriteriaBestOverall, ParseCriteria("windiest"))
	assert.Equal(t, CriteriaBestOverall, ParseCriteria(""))
}
