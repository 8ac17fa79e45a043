package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindChill_CalmWindReturnsTemperature(t *testing.T) {
	for _, temp := range []float64{-40, -12.34, 0, 7.77, 25, 41.5} {
		for _, wind := range []float64{0, 1, 4.79} {
			assert.Equal(t, temp, WindChill(temp, wind))
		}
	}
}

func TestWindChill_KnownValues(t *testing.T) {
	tests := []struct {
		temp, wind, want float64
	}{
		{-20, 40, -34.1},
		{0, 10, -3.3},
		{-10, 20, -17.8},
		{-5, 15, -10.6},
		{0, 4.8, -1.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, WindChill(tt.temp, tt.wind), 1e-9, "temp=%v wind=%v", tt.temp, tt.wind)
	}
}

func TestWindChill_DecreasesWithWind(t *testing.T) {
	for _, temp := range []float64{-30, -10, 0, 5, 9.9} {
		prev := WindChill(temp, 5)
		for wind := 10.0; wind <= 120; wind += 5 {
			got := WindChill(temp, wind)
			assert.LessOrEqual(t, got, prev, "temp=%v wind=%v", temp, wind)
			prev = got
		}
	}
}
