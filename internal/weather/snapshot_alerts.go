package weather

import (
	"fmt"
	"math"
	"time"
)

// SnapshotAlertInput is what GenerateSnapshotAlerts evaluates.
type SnapshotAlertInput struct {
	Current       *CurrentConditions
	Hourly        *HourlySeries
	Daily         *DailySeries
	EuropeanAQI   *float64
	ForecastHours int
	Now           time.Time
}

// GenerateSnapshotAlerts derives alerts from the current snapshot, today's UV
// maximum, the current European AQI and the first heavy precipitation hour.
// Thresholds differ from GenerateWeatherAlerts and windows are anchored on Now.
func GenerateSnapshotAlerts(in SnapshotAlertInput) []Alert {
	now := in.Now
	stamp := func(t time.Time) string { return t.Format(time.RFC3339) }
	alerts := make([]Alert, 0, 7)

	if c := in.Current; c != nil && c.Temperature != nil {
		temp := *c.Temperature
		switch {
		case temp > 30:
			sev := SeverityAdvisory
			if temp > 35 {
				sev = SeverityWarning
			} else if temp > 32 {
				sev = SeverityWatch
			}
			alerts = append(alerts, newAlert(AlertHeat, sev, stamp(now), stamp(now.Add(6*time.Hour)),
				fmt.Sprintf("High temperature alert: %.1f°C", temp)))
		case temp < -5:
			wind := 0.0
			if c.WindSpeed != nil {
				wind = *c.WindSpeed
			}
			apparent := temp - wind*0.6
			sev := SeverityAdvisory
			if apparent < -15 {
				sev = SeverityWarning
			} else if apparent < -10 {
				sev = SeverityWatch
			}
			alerts = append(alerts, newAlert(AlertCold, sev, stamp(now), stamp(now.Add(6*time.Hour)),
				fmt.Sprintf("Cold temperature alert: %.1f°C (feels like %.1f°C)", temp, apparent)))
		}
	}

	if c := in.Current; c != nil && c.WindSpeed != nil && *c.WindSpeed > 60 {
		sev := SeverityWatch
		if *c.WindSpeed > 80 {
			sev = SeverityWarning
		}
		alerts = append(alerts, newAlert(AlertWind, sev, stamp(now), stamp(now.Add(6*time.Hour)),
			fmt.Sprintf("High wind alert: %.1f km/h", *c.WindSpeed)))
	}

	if c := in.Current; c != nil && c.WeatherCode != nil && *c.WeatherCode >= 95 {
		alerts = append(alerts, newAlert(AlertStorm, SeverityWarning, stamp(now), stamp(now.Add(3*time.Hour)),
			"Thunderstorm alert: Lightning and heavy precipitation"))
	}

	if in.Daily != nil {
		if uv := in.Daily.UVIndexMax.At(0); uv > 8 {
			sev := SeverityWatch
			if uv > 10 {
				sev = SeverityWarning
			}
			y, m, d := now.Date()
			start := time.Date(y, m, d, 10, 0, now.Second(), now.Nanosecond(), now.Location())
			end := time.Date(y, m, d, 16, 0, now.Second(), now.Nanosecond(), now.Location())
			alerts = append(alerts, newAlert(AlertUV, sev, stamp(start), stamp(end),
				fmt.Sprintf("High UV alert: UV Index %.0f", uv)))
		}
	}

	if aqi := in.EuropeanAQI; aqi != nil && *aqi > 80 {
		sev := SeverityWatch
		if *aqi > 120 {
			sev = SeverityWarning
		}
		alerts = append(alerts, newAlert(AlertAirQuality, sev, stamp(now), stamp(now.Add(12*time.Hour)),
			fmt.Sprintf("Poor air quality alert: European AQI %.0f", *aqi)))
	}

	if h := in.Hourly; h != nil {
		limit := min(in.ForecastHours, len(h.Time), len(h.Precipitation))
		for i := 0; i < limit; i++ {
			precip := h.Precipitation[i]
			if !(precip > 10) {
				continue
			}
			sev := SeverityWatch
			if precip > 20 {
				sev = SeverityWarning
			}
			at := now.Add(time.Duration(i) * time.Hour)
			alerts = append(alerts, newAlert(AlertPrecipitation, sev, stamp(at), stamp(at.Add(time.Hour)),
				fmt.Sprintf("Heavy precipitation alert: %.1fmm/hour expected", precip)))
			break
		}
	}

	return alerts
}

// isFinite reports whether v is a usable sample.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
