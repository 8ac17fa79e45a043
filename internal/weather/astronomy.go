package weather

import (
	"fmt"
	"math"
	"time"
)

// TimeWindow is a closed time interval.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AstronomyResult holds approximate solar timings for one day. On failure
// Sunrise and Sunset are nil and Error is set. When the day is shorter than
// an hour the golden hour collapses to the instant half an hour after sunrise.
type AstronomyResult struct {
	Date           string      `json:"date,omitempty"`
	Timezone       string      `json:"timezone,omitempty"`
	Sunrise        *time.Time  `json:"sunrise"`
	Sunset         *time.Time  `json:"sunset"`
	DayLengthHours float64     `json:"day_length_hours"`
	GoldenHour     *TimeWindow `json:"golden_hour,omitempty"`
	BlueHour       *TimeWindow `json:"blue_hour,omitempty"`
	Error          string      `json:"error,omitempty"`
}

const (
	earthObliquityDeg = 23.4393
	goldenHourOffset  = 30 * time.Minute
	blueHourLength    = 40 * time.Minute
)

// CalculateAstronomy estimates sunrise, sunset, golden hour and blue hour for
// a coordinate on the calendar day of date in timezone. At polar latitudes
// the hour angle is clamped, giving a 0 or 24 hour day instead of failing.
// Only an unknown timezone produces an error result.
func CalculateAstronomy(lat, lon float64, timezone string, date time.Time) AstronomyResult {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return AstronomyResult{
			Timezone: timezone,
			Error:    fmt.Sprintf("unknown timezone %q: %v", timezone, err),
		}
	}

	local := date.In(loc)
	y, m, d := local.Date()
	doy := float64(local.YearDay())

	rad := math.Pi / 180
	meanAnomaly := math.Mod(357.5291+0.98560028*doy, 360)
	mr := meanAnomaly * rad
	center := 1.9148*math.Sin(mr) + 0.02*math.Sin(2*mr) + 0.0003*math.Sin(3*mr)
	eclipticLon := math.Mod(meanAnomaly+center+180+102.9372, 360)
	declination := math.Asin(math.Sin(earthObliquityDeg*rad) * math.Sin(eclipticLon*rad))

	cosH := -math.Tan(lat*rad) * math.Tan(declination)
	cosH = math.Max(-1, math.Min(1, cosH))
	hourAngle := math.Acos(cosH) / rad

	midnightUTC := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	at := func(hours float64) time.Time {
		return midnightUTC.Add(time.Duration(hours * float64(time.Hour))).In(loc)
	}
	sunrise := at(12 - hourAngle/15 - lon/15)
	sunset := at(12 + hourAngle/15 - lon/15)

	golden := TimeWindow{Start: sunrise.Add(goldenHourOffset), End: sunset.Add(-goldenHourOffset)}
	if golden.End.Before(golden.Start) {
		golden.End = golden.Start
	}

	return AstronomyResult{
		Date:           local.Format("2006-01-02"),
		Timezone:       loc.String(),
		Sunrise:        &sunrise,
		Sunset:         &sunset,
		DayLengthHours: round1(sunset.Sub(sunrise).Hours()),
		GoldenHour:     &golden,
		BlueHour: &TimeWindow{
			Start: sunset,
			End:   sunset.Add(blueHourLength),
		},
	}
}
