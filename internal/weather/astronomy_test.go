package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var midsummer = time.Date(2026, 6, 21, 12, 0, 0, 0, time.UTC)

func TestCalculateAstronomy_Bern(t *testing.T) {
	res := CalculateAstronomy(46.948, 7.447, "Europe/Zurich", midsummer)

	require.Empty(t, res.Error)
	require.NotNil(t, res.Sunrise)
	require.NotNil(t, res.Sunset)
	assert.Equal(t, "2026-06-21", res.Date)
	assert.Equal(t, "Europe/Zurich", res.Timezone)

	assert.Equal(t, 5, res.Sunrise.Hour())
	assert.InDelta(t, 39, res.Sunrise.Minute(), 2)
	assert.Equal(t, 21, res.Sunset.Hour())
	assert.Equal(t, 15.7, res.DayLengthHours)

	_, offset := res.Sunrise.Zone()
	assert.Equal(t, 2*3600, offset)
}

func TestCalculateAstronomy_Windows(t *testing.T) {
	res := CalculateAstronomy(46.948, 7.447, "Europe/Zurich", midsummer)
	require.NotNil(t, res.GoldenHour)
	require.NotNil(t, res.BlueHour)

	assert.Equal(t, res.Sunrise.Add(30*time.Minute), res.GoldenHour.Start)
	assert.Equal(t, res.Sunset.Add(-30*time.Minute), res.GoldenHour.End)
	assert.Equal(t, *res.Sunset, res.BlueHour.Start)
	assert.Equal(t, res.Sunset.Add(40*time.Minute), res.BlueHour.End)
}

func TestCalculateAstronomy_PolarLatitudesClamp(t *testing.T) {
	midnightSun := CalculateAstronomy(70, 20, "UTC", midsummer)
	require.Empty(t, midnightSun.Error)
	require.NotNil(t, midnightSun.Sunrise)
	assert.Equal(t, 24.0, midnightSun.DayLengthHours)

	polarNight := CalculateAstronomy(-70, 20, "UTC", midsummer)
	require.Empty(t, polarNight.Error)
	require.NotNil(t, polarNight.Sunset)
	assert.Equal(t, 0.0, polarNight.DayLengthHours)
	require.NotNil(t, polarNight.GoldenHour)
	assert.False(t, polarNight.GoldenHour.End.Before(polarNight.GoldenHour.Start))
	assert.Equal(t, polarNight.Sunrise.Add(30*time.Minute), polarNight.GoldenHour.Start)
}

func TestCalculateAstronomy_UsesLocalCalendarDay(t *testing.T) {
	// 23:30 UTC on 31 Dec is already 1 Jan in Zurich.
	res := CalculateAstronomy(46.948, 7.447, "Europe/Zurich", time.Date(2026, 12, 31, 23, 30, 0, 0, time.UTC))
	require.Empty(t, res.Error)
	assert.Equal(t, "2027-01-01", res.Date)
	assert.Equal(t, 1, res.Sunrise.Day())
}

func TestCalculateAstronomy_UnknownTimezone(t *testing.T) {
	res := CalculateAstronomy(46.948, 7.447, "Mars/Olympus_Mons", midsummer)

	assert.NotEmpty(t, res.Error)
	assert.Nil(t, res.Sunrise)
	assert.Nil(t, res.Sunset)
	assert.Nil(t, res.GoldenHour)
	assert.Equal(t, "Mars/Olympus_Mons", res.Timezone)
}
