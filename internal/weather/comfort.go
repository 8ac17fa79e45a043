package weather

import "math"

// ComfortInput holds the current values the comfort index is built from.
// A nil field means the value is unavailable.
type ComfortInput struct {
	Temperature              *float64 `json:"temperature"`
	RelativeHumidity         *float64 `json:"relative_humidity_2m"`
	WindSpeed                *float64 `json:"wind_speed_10m"`
	UVIndex                  *float64 `json:"uv_index"`
	PrecipitationProbability *float64 `json:"precipitation_probability"`
	WeatherCode              *int     `json:"weather_code"`
}

// ComfortInputFromCurrent maps an Open-Meteo "current" block onto ComfortInput.
func ComfortInputFromCurrent(c *CurrentBlock) ComfortInput {
	if c == nil {
		return ComfortInput{}
	}
	return ComfortInput{
		Temperature:              c.Temperature,
		RelativeHumidity:         c.RelativeHumidity,
		WindSpeed:                c.WindSpeed,
		UVIndex:                  c.UVIndex,
		PrecipitationProbability: c.PrecipitationProbability,
		WeatherCode:              c.WeatherCode,
	}
}

// AirQualityInput carries the optional air-quality term.
type AirQualityInput struct {
	EuropeanAQI *float64 `json:"european_aqi"`
}

// ComfortFactors are the 0-100 sub-scores.
type ComfortFactors struct {
	ThermalComfort    float64 `json:"thermal_comfort"`
	AirQuality        float64 `json:"air_quality"`
	PrecipitationRisk float64 `json:"precipitation_risk"`
	UVSafety          float64 `json:"uv_safety"`
	WeatherCondition  float64 `json:"weather_condition"`
}

// ComfortResult is the weighted comfort index.
type ComfortResult struct {
	Overall        float64        `json:"overall"`
	Factors        ComfortFactors `json:"factors"`
	Recommendation string         `json:"recommendation"`
}

const (
	defaultAQI             = 50.0
	comfortFallbackScore   = 50.0
	comfortFallbackMessage = "Unable to calculate comfort index"
)

var weatherSeverityScores = map[Severity]float64{
	SeverityNone:    100,
	SeverityLow:     85,
	SeverityMedium:  70,
	SeverityHigh:    40,
	SeverityExtreme: 10,
}

var comfortBands = []struct {
	min  float64
	text string
}{
	{80, "Perfect for outdoor activities"},
	{60, "Good conditions for outdoor activities"},
	{40, "Fair conditions; plan accordingly"},
	{20, "Poor conditions; seek indoor alternatives"},
}

// ComfortFallback is returned when the inputs are incomplete.
func ComfortFallback() ComfortResult {
	return ComfortResult{
		Overall: comfortFallbackScore,
		Factors: ComfortFactors{
			ThermalComfort:    comfortFallbackScore,
			AirQuality:        comfortFallbackScore,
			PrecipitationRisk: comfortFallbackScore,
			UVSafety:          comfortFallbackScore,
			WeatherCondition:  comfortFallbackScore,
		},
		Recommendation: comfortFallbackMessage,
	}
}

// CalculateComfortIndex combines thermal, air quality, precipitation, UV and
// weather sub-scores into a 0-100 index. Any missing or non-finite weather
// field yields ComfortFallback. A missing AQI counts as 50.
func CalculateComfortIndex(w ComfortInput, air *AirQualityInput) ComfortResult {
	if !present(w.Temperature) || !present(w.RelativeHumidity) || !present(w.WindSpeed) ||
		!present(w.UVIndex) || !present(w.PrecipitationProbability) || w.WeatherCode == nil {
		return ComfortFallback()
	}

	temp, humidity, wind := *w.Temperature, *w.RelativeHumidity, *w.WindSpeed

	var thermal float64
	switch {
	case temp > 25:
		thermal = 100 - math.Min(40, (temp-25)*2+(humidity-40)*0.5)
	case temp < 5:
		chill := WindChill(temp, wind)
		thermal = math.Max(0, 100-math.Min(50, (5-chill)*3))
	default:
		thermal = 100 - math.Abs(temp-20)*2
	}

	aqi := defaultAQI
	if air != nil && present(air.EuropeanAQI) {
		aqi = *air.EuropeanAQI
	}
	airFactor := math.Max(0, 100-aqi)
	precipFactor := 100 - *w.PrecipitationProbability
	uvFactor := math.Max(0, 100-*w.UVIndex*12)

	weatherFactor, ok := weatherSeverityScores[LookupWeatherCode(*w.WeatherCode).Severity]
	if !ok {
		weatherFactor = 50
	}

	overall := round1(thermal*0.25 + airFactor*0.15 + precipFactor*0.20 + uvFactor*0.15 + weatherFactor*0.25)

	return ComfortResult{
		Overall: overall,
		Factors: ComfortFactors{
			ThermalComfort:    round1(thermal),
			AirQuality:        round1(airFactor),
			PrecipitationRisk: round1(precipFactor),
			UVSafety:          round1(uvFactor),
			WeatherCondition:  weatherFactor,
		},
		Recommendation: comfortRecommendation(overall),
	}
}

func comfortRecommendation(overall float64) string {
	for _, b := range comfortBands {
		if overall >= b.min {
			return b.text
		}
	}
	return "Very poor conditions; avoid outdoor activities"
}

func present(v *float64) bool {
	return v != nil && isFinite(*v)
}
