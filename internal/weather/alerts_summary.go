package weather

import "time"

// AlertSummary counts alerts by type and severity.
type AlertSummary struct {
	TotalAlerts         int                   `json:"total_alerts"`
	ByType              map[AlertType]int     `json:"by_type"`
	BySeverity          map[AlertSeverity]int `json:"by_severity"`
	AnalysisPeriodHours int                   `json:"analysis_period_hours"`
	Timestamp           string                `json:"timestamp"`
}

// AlertConditions echoes the current values the alerts were derived from.
type AlertConditions struct {
	Temperature   *float64 `json:"temperature"`
	WindSpeed     *float64 `json:"wind_speed"`
	WeatherCode   *int     `json:"weather_code"`
	AirQualityAQI *float64 `json:"air_quality_aqi,omitempty"`
}

// AlertReport is the full snapshot alert result.
type AlertReport struct {
	Alerts          []Alert          `json:"alerts"`
	Summary         AlertSummary     `json:"summary"`
	Conditions      *AlertConditions `json:"conditions"`
	Recommendations []string         `json:"recommendations"`
}

const (
	recommendWarning = "WARNING conditions present - review all active alerts"
	recommendWatch   = "WATCH conditions developing - monitor forecast updates"
	recommendNone    = "No weather alerts - conditions are within normal ranges"
)

// SummarizeAlerts wraps alerts with counts, the conditions they were derived
// from and prioritized recommendations.
func SummarizeAlerts(alerts []Alert, current *CurrentConditions, aqi *float64, hours int, now time.Time) AlertReport {
	if alerts == nil {
		alerts = []Alert{}
	}

	byType := make(map[AlertType]int, len(AlertTypes))
	for _, t := range AlertTypes {
		byType[t] = 0
	}
	bySeverity := make(map[AlertSeverity]int, len(AlertSeverities))
	for _, s := range AlertSeverities {
		bySeverity[s] = 0
	}
	for _, a := range alerts {
		byType[a.Type]++
		bySeverity[a.Severity]++
	}

	var conditions *AlertConditions
	if current != nil {
		conditions = &AlertConditions{
			Temperature: current.Temperature,
			WindSpeed:   current.WindSpeed,
			WeatherCode: current.WeatherCode,
		}
	}
	if aqi != nil {
		if conditions == nil {
			conditions = &AlertConditions{}
		}
		conditions.AirQualityAQI = aqi
	}

	recs := make([]string, 0, 2)
	if bySeverity[SeverityWarning] > 0 {
		recs = append(recs, recommendWarning)
	}
	if bySeverity[SeverityWatch] > 0 {
		recs = append(recs, recommendWatch)
	}
	if len(alerts) == 0 {
		recs = append(recs, recommendNone)
	}

	return AlertReport{
		Alerts: alerts,
		Summary: AlertSummary{
			TotalAlerts:         len(alerts),
			ByType:              byType,
			BySeverity:          bySeverity,
			AnalysisPeriodHours: hours,
			Timestamp:           now.Format(time.RFC3339),
		},
		Conditions:      conditions,
		Recommendations: recs,
	}
}
