package weather

import "math"

// SkiGrade is a four-level ski conditions grade.
type SkiGrade string

const (
	SkiExcellent SkiGrade = "Excellent"
	SkiGood      SkiGrade = "Good"
	SkiFair      SkiGrade = "Fair"
	SkiPoor      SkiGrade = "Poor"
)

// Rank orders grades: Excellent is 4, Poor is 1, anything else 0.
func (g SkiGrade) Rank() int {
	switch g {
	case SkiExcellent:
		return 4
	case SkiGood:
		return 3
	case SkiFair:
		return 2
	case SkiPoor:
		return 1
	}
	return 0
}

// ClassifySkiConditions grades skiing for a snow depth in metres, recent
// snowfall in centimetres, air temperature in °C and a WMO code. The first
// matching grade wins.
func ClassifySkiConditions(snowDepthM, recentSnowfallCm, temperatureC float64, weatherCode int) SkiGrade {
	switch {
	case recentSnowfallCm > 10 && temperatureC >= -15 && temperatureC <= -5 && weatherCode >= 0 && weatherCode <= 2:
		return SkiExcellent
	case snowDepthM > 0.5 && temperatureC >= -10 && temperatureC <= 0 && weatherCode >= 0 && weatherCode <= 3:
		return SkiGood
	case snowDepthM > 0.2 && temperatureC < 5:
		return SkiFair
	default:
		return SkiPoor
	}
}

// SkiAssessment is the grade with the inputs it was derived from.
type SkiAssessment struct {
	Grade            SkiGrade `json:"grade"`
	SnowDepthM       float64  `json:"snow_depth_m"`
	RecentSnowfallCm float64  `json:"recent_snowfall_cm"`
	TemperatureC     float64  `json:"temperature_c"`
	WeatherCode      int      `json:"weather_code"`
	Conditions       string   `json:"conditions"`
}

// AssessSnowForecast derives classifier inputs from a snow forecast: depth
// and temperature and code come from the first hourly sample, recent snowfall
// is the sum of the first 24 hourly samples. Missing values count as zero,
// with daily aggregates used as fallbacks.
func AssessSnowForecast(f SnowForecast) SkiAssessment {
	var snowfall float64
	depth, temp, codeF := math.NaN(), math.NaN(), math.NaN()
	code := 0

	if h := f.Hourly; h != nil {
		depth = h.SnowDepth.At(0)
		temp = h.Temperature.At(0)
		codeF = h.WeatherCode.At(0)
		for i := 0; i < alertScanHours && i < len(h.Snowfall); i++ {
			if isFinite(h.Snowfall[i]) {
				snowfall += h.Snowfall[i]
			}
		}
	}
	if d := f.Daily; d != nil {
		if !isFinite(depth) {
			depth = d.SnowDepthMax.At(0)
		}
		if !isFinite(temp) {
			temp = d.TemperatureMax.At(0)
		}
	}
	if !isFinite(depth) {
		depth = 0
	}
	if !isFinite(temp) {
		temp = 0
	}
	if isFinite(codeF) {
		code = int(codeF)
	}

	return SkiAssessment{
		Grade:            ClassifySkiConditions(depth, snowfall, temp, code),
		SnowDepthM:       depth,
		RecentSnowfallCm: round1(snowfall),
		TemperatureC:     temp,
		WeatherCode:      code,
		Conditions:       LookupWeatherCode(code).Description,
	}
}
