package weather

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySkiConditions(t *testing.T) {
	tests := []struct {
		name                  string
		depth, snowfall, temp float64
		code                  int
		want                  SkiGrade
	}{
		{"fresh powder wins over later rules", 1.2, 15, -10, 0, SkiExcellent},
		{"excellent at temperature bounds", 0, 10.1, -15, 2, SkiExcellent},
		{"excellent needs clear sky", 1.2, 15, -10, 3, SkiGood},
		{"good base", 0.6, 0, -3, 3, SkiGood},
		{"good at zero degrees", 0.51, 0, 0, 1, SkiGood},
		{"too warm for good", 0.8, 0, 1, 0, SkiFair},
		{"snowing is fair", 0.8, 5, -5, 73, SkiFair},
		{"thin base", 0.2, 0, -5, 0, SkiPoor},
		{"too warm", 1.0, 20, 5, 0, SkiPoor},
		{"no snow", 0, 0, -5, 0, SkiPoor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySkiConditions(tt.depth, tt.snowfall, tt.temp, tt.code))
		})
	}
}

func TestSkiGrade_Rank(t *testing.T) {
	assert.Greater(t, SkiExcellent.Rank(), SkiGood.Rank())
	assert.Greater(t, SkiGood.Rank(), SkiFair.Rank())
	assert.Greater(t, SkiFair.Rank(), SkiPoor.Rank())
	assert.Equal(t, 0, SkiGrade("Epic").Rank())
}

func TestAssessSnowForecast(t *testing.T) {
	snowfall := repeat(0.5, 30) // only the first 24 hours count
	f := SnowForecast{
		Hourly: &HourlySnow{
			Time:        hourlyTimes(30),
			SnowDepth:   Series{1.1, 1.1},
			Snowfall:    snowfall,
			Temperature: Series{-8},
			WeatherCode: Series{1},
		},
	}

	a := AssessSnowForecast(f)
	assert.Equal(t, SkiExcellent, a.Grade)
	assert.Equal(t, 1.1, a.SnowDepthM)
	assert.Equal(t, 12.0, a.RecentSnowfallCm)
	assert.Equal(t, -8.0, a.TemperatureC)
	assert.Equal(t, 1, a.WeatherCode)
	assert.Equal(t, "Mainly clear", a.Conditions)
}

func TestAssessSnowForecast_SkipsMissingSamples(t *testing.T) {
	nan := math.NaN()
	f := SnowForecast{
		Hourly: &HourlySnow{
			SnowDepth:   Series{nan},
			Snowfall:    Series{nan, 2, nan, 3},
			Temperature: Series{nan},
		},
		Daily: &DailySnow{
			SnowDepthMax:   Series{0.7},
			TemperatureMax: Series{-2},
		},
	}

	a := AssessSnowForecast(f)
	assert.Equal(t, 0.7, a.SnowDepthM)
	assert.Equal(t, 5.0, a.RecentSnowfallCm)
	assert.Equal(t, -2.0, a.TemperatureC)
	assert.Equal(t, 0, a.WeatherCode)
	assert.Equal(t, SkiGood, a.Grade)
}

func TestAssessSnowForecast_Empty(t *testing.T) {
	a := AssessSnowForecast(SnowForecast{})
	assert.Equal(t, SkiPoor, a.Grade)
	assert.Equal(t, 0.0, a.SnowDepthM)
	assert.Equal(t, 0.0, a.TemperatureC)
}
