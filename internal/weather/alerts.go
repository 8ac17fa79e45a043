package weather

import (
	"fmt"
	"math"
	"time"
)

// AlertType identifies what an alert is about.
type AlertType string

const (
	AlertHeat          AlertType = "heat"
	AlertCold          AlertType = "cold"
	AlertStorm         AlertType = "storm"
	AlertUV            AlertType = "uv"
	AlertWind          AlertType = "wind"
	AlertPrecipitation AlertType = "precipitation"
	AlertAirQuality    AlertType = "air_quality"
)

// AlertTypes lists every alert type in reporting order.
var AlertTypes = []AlertType{
	AlertStorm, AlertHeat, AlertCold, AlertUV, AlertWind, AlertAirQuality, AlertPrecipitation,
}

// AlertSeverity grades an alert.
type AlertSeverity string

const (
	SeverityAdvisory AlertSeverity = "advisory"
	SeverityWatch    AlertSeverity = "watch"
	SeverityWarning  AlertSeverity = "warning"
)

// AlertSeverities lists severities from most to least severe.
var AlertSeverities = []AlertSeverity{SeverityWarning, SeverityWatch, SeverityAdvisory}

// Alert is a single categorized weather alert.
type Alert struct {
	Type            AlertType     `json:"type"`
	Severity        AlertSeverity `json:"severity"`
	Start           string        `json:"start"`
	End             string        `json:"end"`
	Description     string        `json:"description"`
	Recommendations []string      `json:"recommendations"`
}

var alertRecommendations = map[AlertType][]string{
	AlertHeat: {
		"Stay hydrated and drink plenty of water",
		"Avoid prolonged sun exposure during peak hours (11-15h)",
		"Wear light-colored, loose-fitting clothing",
		"Seek shade and air conditioning when possible",
	},
	AlertCold: {
		"Dress in warm layers and cover exposed skin",
		"Wear insulated, waterproof footwear",
		"Limit time outdoors and watch for frostbite signs",
		"Keep emergency supplies in vehicles",
	},
	AlertWind: {
		"Secure loose outdoor objects and furniture",
		"Avoid driving high-profile vehicles",
		"Stay away from trees and power lines",
		"Consider postponing outdoor activities",
	},
	AlertStorm: {
		"Seek indoor shelter immediately",
		"Avoid using electrical equipment",
		"Stay away from windows and doors",
		"Do not take shelter under trees",
	},
	AlertUV: {
		"Apply broad-spectrum SPF 30+ sunscreen every 2 hours",
		"Wear protective clothing and wide-brimmed hat",
		"Seek shade between 10am-4pm",
		"Wear UV-blocking sunglasses",
	},
	AlertAirQuality: {
		"Limit outdoor activities, especially strenuous exercise",
		"Keep windows closed and use air purifiers if available",
		"Sensitive groups should stay indoors",
		"Wear N95 masks when outdoors if needed",
	},
	AlertPrecipitation: {
		"Allow extra travel time due to possible delays",
		"Drive carefully and reduce speed",
		"Avoid flood-prone areas and underpasses",
		"Carry umbrella and waterproof gear",
	},
}

// Recommendations returns a copy of the fixed guidance for an alert type.
func Recommendations(t AlertType) []string {
	return append([]string(nil), alertRecommendations[t]...)
}

func newAlert(t AlertType, sev AlertSeverity, start, end, desc string) Alert {
	return Alert{
		Type:            t,
		Severity:        sev,
		Start:           start,
		End:             end,
		Description:     desc,
		Recommendations: Recommendations(t),
	}
}

const (
	heatThresholdC      = 30.0
	heatWatchHours      = 3
	heatWarningHours    = 6
	coldThresholdC      = -10.0
	coldWarningC        = -20.0
	stormGustKmh        = 80.0
	moderateGustKmh     = 50.0
	uvAlertIndex        = 8.0
	alertScanHours      = 24
	coldWindowHours     = 12
	stormWindowHours    = 2
	openMeteoTimeLayout = "2006-01-02T15:04"
)

var thunderstormCodes = map[int]bool{95: true, 96: true, 99: true}

// GenerateWeatherAlerts evaluates the forecast series and returns alerts in
// rule order: heat, cold, storm, uv, wind. A rule whose inputs are missing
// does not fire. timezone only affects how now is rendered when a window has
// no hourly timestamp to anchor on.
func GenerateWeatherAlerts(current CurrentConditions, hourly HourlySeries, daily DailySeries, timezone string, now time.Time) []Alert {
	nowLabel := formatLocal(now, timezone)
	times := hourly.Time
	alerts := make([]Alert, 0, 5)

	// Heat.
	if len(times) > 0 {
		heatHours := 0
		for i := 0; i < alertScanHours && i < len(hourly.Temperature); i++ {
			if hourly.Temperature[i] > heatThresholdC {
				heatHours++
			}
		}
		if heatHours >= heatWatchHours {
			sev := SeverityWatch
			if heatHours >= heatWarningHours {
				sev = SeverityWarning
			}
			end := timeAt(times, min(alertScanHours, heatHours))
			alerts = append(alerts, newAlert(AlertHeat, sev, times[0], end,
				fmt.Sprintf("Heat alert: %d hours above %.0f°C in the next 24 hours", heatHours, heatThresholdC)))
		}
	}

	// Cold.
	currentTemp := math.NaN()
	if current.Temperature != nil {
		currentTemp = *current.Temperature
	}
	coldHourly := false
	for i := 0; i < alertScanHours && i < len(hourly.Temperature); i++ {
		if hourly.Temperature[i] < coldThresholdC {
			coldHourly = true
			break
		}
	}
	if currentTemp < coldThresholdC || coldHourly {
		sev := SeverityWatch
		if currentTemp <= coldWarningC {
			sev = SeverityWarning
		}
		start, end := nowLabel, nowLabel
		if len(times) > 0 {
			start = times[0]
			end = timeAt(times, min(coldWindowHours, len(times)-1))
		}
		desc := fmt.Sprintf("Cold alert: temperatures below %.0f°C expected", coldThresholdC)
		if !math.IsNaN(currentTemp) {
			desc = fmt.Sprintf("Cold alert: %.1f°C now, temperatures below %.0f°C expected", currentTemp, coldThresholdC)
		}
		alerts = append(alerts, newAlert(AlertCold, sev, start, end, desc))
	}

	// Storm.
	firstHighGust := -1
	for i, g := range hourly.WindGusts {
		if g > stormGustKmh {
			firstHighGust = i
			break
		}
	}
	stormCode := false
	for _, c := range daily.WeatherCode {
		if !math.IsNaN(c) && thunderstormCodes[int(c)] {
			stormCode = true
			break
		}
	}
	stormFromWind := firstHighGust >= 0 && len(times) > 0
	switch {
	case stormFromWind:
		alerts = append(alerts, newAlert(AlertStorm, SeverityWarning,
			timeAt(times, firstHighGust), timeAt(times, firstHighGust+stormWindowHours),
			fmt.Sprintf("Storm alert: wind gusts above %.0f km/h (%.1f km/h)", stormGustKmh, hourly.WindGusts[firstHighGust])))
	case stormCode:
		alerts = append(alerts, newAlert(AlertStorm, SeverityWarning,
			nowLabel, formatLocal(now.Add(stormWindowHours*time.Hour), timezone),
			"Storm alert: thunderstorms forecast"))
	}

	// UV.
	if first, last := qualifyingRange(hourly.UVIndex, func(v float64) bool { return v > uvAlertIndex }); first >= 0 && len(times) > 0 {
		alerts = append(alerts, newAlert(AlertUV, SeverityAdvisory,
			timeAt(times, first), timeAt(times, last+1),
			fmt.Sprintf("UV advisory: UV index above %.0f expected", uvAlertIndex)))
	}

	// Wind.
	if !stormFromWind && len(times) > 0 {
		first, last := qualifyingRange(hourly.WindGusts, func(v float64) bool {
			return v > moderateGustKmh && v <= stormGustKmh
		})
		if first >= 0 {
			alerts = append(alerts, newAlert(AlertWind, SeverityAdvisory,
				timeAt(times, first), timeAt(times, last+1),
				fmt.Sprintf("Wind advisory: gusts between %.0f and %.0f km/h expected", moderateGustKmh, stormGustKmh)))
		}
	}

	return alerts
}

// qualifyingRange returns the first and last index whose sample satisfies ok,
// or -1, -1 when none does.
func qualifyingRange(s Series, ok func(float64) bool) (int, int) {
	first, last := -1, -1
	for i, v := range s {
		if math.IsNaN(v) || !ok(v) {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	return first, last
}

// timeAt returns times[i] with i clamped into range. times must be non-empty.
func timeAt(times []string, i int) string {
	if i >= len(times) {
		i = len(times) - 1
	}
	if i < 0 {
		i = 0
	}
	return times[i]
}

func formatLocal(t time.Time, timezone string) string {
	if loc, err := time.LoadLocation(timezone); err == nil && timezone != "" {
		t = t.In(loc)
	}
	return t.Format(openMeteoTimeLayout)
}
