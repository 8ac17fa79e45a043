package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var snapshotNow = time.Date(2026, 7, 1, 8, 30, 0, 0, time.FixedZone("CEST", 2*3600))

func snapshotInput(current CurrentConditions) SnapshotAlertInput {
	return SnapshotAlertInput{Current: &current, ForecastHours: 24, Now: snapshotNow}
}

func TestGenerateSnapshotAlerts_HeatSeverity(t *testing.T) {
	tests := []struct {
		temp float64
		want AlertSeverity
	}{
		{31, SeverityAdvisory},
		{32, SeverityAdvisory},
		{33, SeverityWatch},
		{35, SeverityWatch},
		{36, SeverityWarning},
	}
	for _, tt := range tests {
		alerts := GenerateSnapshotAlerts(snapshotInput(CurrentConditions{Temperature: ptr(tt.temp)}))
		require.Len(t, alerts, 1, "temp %v", tt.temp)
		assert.Equal(t, AlertHeat, alerts[0].Type)
		assert.Equal(t, tt.want, alerts[0].Severity, "temp %v", tt.temp)
	}

	alerts := GenerateSnapshotAlerts(snapshotInput(CurrentConditions{Temperature: ptr(36.04)}))
	assert.Equal(t, "High temperature alert: 36.0°C", alerts[0].Description)
	assert.Equal(t, "2026-07-01T08:30:00+02:00", alerts[0].Start)
	assert.Equal(t, "2026-07-01T14:30:00+02:00", alerts[0].End)

	assert.Empty(t, GenerateSnapshotAlerts(snapshotInput(CurrentConditions{Temperature: ptr(30.0)})))
}

func TestGenerateSnapshotAlerts_ColdUsesApparentTemperature(t *testing.T) {
	tests := []struct {
		temp, wind float64
		want       AlertSeverity
	}{
		{-6, 0, SeverityAdvisory},
		{-8, 10, SeverityWatch},
		{-10, 15, SeverityWarning},
	}
	for _, tt := range tests {
		alerts := GenerateSnapshotAlerts(snapshotInput(CurrentConditions{Temperature: ptr(tt.temp), WindSpeed: ptr(tt.wind)}))
		require.Len(t, alerts, 1)
		assert.Equal(t, AlertCold, alerts[0].Type)
		assert.Equal(t, tt.want, alerts[0].Severity, "temp %v wind %v", tt.temp, tt.wind)
	}

	alerts := GenerateSnapshotAlerts(snapshotInput(CurrentConditions{Temperature: ptr(-8.0), WindSpeed: ptr(10.0)}))
	assert.Equal(t, "Cold temperature alert: -8.0°C (feels like -14.0°C)", alerts[0].Description)

	// Missing wind counts as calm.
	alerts = GenerateSnapshotAlerts(snapshotInput(CurrentConditions{Temperature: ptr(-12.0)}))
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityWatch, alerts[0].Severity)

	assert.Empty(t, GenerateSnapshotAlerts(snapshotInput(CurrentConditions{Temperature: ptr(-5.0)})))
}

func TestGenerateSnapshotAlerts_Wind(t *testing.T) {
	alerts := GenerateSnapshotAlerts(snapshotInput(CurrentConditions{WindSpeed: ptr(85.0)}))
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertWind, alerts[0].Type)
	assert.Equal(t, SeverityWarning, alerts[0].Severity)
	assert.Equal(t, "High wind alert: 85.0 km/h", alerts[0].Description)

	alerts = GenerateSnapshotAlerts(snapshotInput(CurrentConditions{WindSpeed: ptr(65.0)}))
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityWatch, alerts[0].Severity)

	assert.Empty(t, GenerateSnapshotAlerts(snapshotInput(CurrentConditions{WindSpeed: ptr(60.0)})))
}

func TestGenerateSnapshotAlerts_Storm(t *testing.T) {
	alerts := GenerateSnapshotAlerts(snapshotInput(CurrentConditions{WeatherCode: ptr(95)}))
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertStorm, alerts[0].Type)
	assert.Equal(t, SeverityWarning, alerts[0].Severity)
	assert.Equal(t, "2026-07-01T11:30:00+02:00", alerts[0].End)

	assert.Empty(t, GenerateSnapshotAlerts(snapshotInput(CurrentConditions{WeatherCode: ptr(82)})))
}

func TestGenerateSnapshotAlerts_UVFromTodaysMax(t *testing.T) {
	in := SnapshotAlertInput{Daily: &DailySeries{UVIndexMax: Series{9, 12}}, Now: snapshotNow}
	alerts := GenerateSnapshotAlerts(in)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertUV, alerts[0].Type)
	assert.Equal(t, SeverityWatch, alerts[0].Severity)
	assert.Equal(t, "High UV alert: UV Index 9", alerts[0].Description)
	assert.Equal(t, "2026-07-01T10:00:00+02:00", alerts[0].Start)
	assert.Equal(t, "2026-07-01T16:00:00+02:00", alerts[0].End)

	in.Daily.UVIndexMax = Series{11}
	alerts = GenerateSnapshotAlerts(in)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityWarning, alerts[0].Severity)

	in.Daily.UVIndexMax = Series{8, 12}
	assert.Empty(t, GenerateSnapshotAlerts(in))

	in.Daily.UVIndexMax = nil
	assert.Empty(t, GenerateSnapshotAlerts(in))
}

func TestGenerateSnapshotAlerts_AirQuality(t *testing.T) {
	in := SnapshotAlertInput{EuropeanAQI: ptr(90.0), Now: snapshotNow}
	alerts := GenerateSnapshotAlerts(in)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertAirQuality, alerts[0].Type)
	assert.Equal(t, SeverityWatch, alerts[0].Severity)
	assert.Equal(t, "2026-07-01T20:30:00+02:00", alerts[0].End)

	in.EuropeanAQI = ptr(130.0)
	assert.Equal(t, SeverityWarning, GenerateSnapshotAlerts(in)[0].Severity)

	in.EuropeanAQI = nil
	assert.Empty(t, GenerateSnapshotAlerts(in))
}

func TestGenerateSnapshotAlerts_PrecipitationFirstMatchOnly(t *testing.T) {
	in := SnapshotAlertInput{
		Hourly:        &HourlySeries{Time: hourlyTimes(4), Precipitation: Series{0, 15, 25, 30}},
		ForecastHours: 24,
		Now:           snapshotNow,
	}
	alerts := GenerateSnapshotAlerts(in)
	require.Len(t, alerts, 1)
	a := alerts[0]
	assert.Equal(t, AlertPrecipitation, a.Type)
	assert.Equal(t, SeverityWatch, a.Severity)
	assert.Equal(t, "2026-07-01T09:30:00+02:00", a.Start)
	assert.Equal(t, "2026-07-01T10:30:00+02:00", a.End)
	assert.Equal(t, "Heavy precipitation alert: 15.0mm/hour expected", a.Description)

	in.Hourly.Precipitation = Series{21}
	assert.Equal(t, SeverityWarning, GenerateSnapshotAlerts(in)[0].Severity)

	// Only hours inside the requested window are scanned.
	in.Hourly.Precipitation = Series{0, 15, 25, 30}
	in.ForecastHours = 1
	assert.Empty(t, GenerateSnapshotAlerts(in))
}

func TestGenerateSnapshotAlerts_Combined(t *testing.T) {
	in := SnapshotAlertInput{
		Current:       &CurrentConditions{Temperature: ptr(37.0), WindSpeed: ptr(70.0), WeatherCode: ptr(99)},
		Daily:         &DailySeries{UVIndexMax: Series{10.5}},
		Hourly:        &HourlySeries{Time: hourlyTimes(2), Precipitation: Series{12, 0}},
		EuropeanAQI:   ptr(125.0),
		ForecastHours: 48,
		Now:           snapshotNow,
	}

	alerts := GenerateSnapshotAlerts(in)
	types := make([]AlertType, 0, len(alerts))
	for _, a := range alerts {
		types = append(types, a.Type)
	}
	assert.Equal(t, []AlertType{AlertHeat, AlertWind, AlertStorm, AlertUV, AlertAirQuality, AlertPrecipitation}, types)
}

func TestGenerateSnapshotAlerts_NoInput(t *testing.T) {
	alerts := GenerateSnapshotAlerts(SnapshotAlertInput{Now: snapshotNow})
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}

func TestSummarizeAlerts(t *testing.T) {
	alerts := []Alert{
		{Type: AlertHeat, Severity: SeverityWarning},
		{Type: AlertUV, Severity: SeverityWatch},
		{Type: AlertUV, Severity: SeverityAdvisory},
	}
	current := &CurrentConditions{Temperature: ptr(36.0), WindSpeed: ptr(5.0), WeatherCode: ptr(1)}

	report := SummarizeAlerts(alerts, current, ptr(42.0), 24, snapshotNow)

	assert.Equal(t, 3, report.Summary.TotalAlerts)
	assert.Equal(t, 1, report.Summary.ByType[AlertHeat])
	assert.Equal(t, 2, report.Summary.ByType[AlertUV])
	assert.Equal(t, 0, report.Summary.ByType[AlertStorm])
	assert.Len(t, report.Summary.ByType, len(AlertTypes))
	assert.Equal(t, map[AlertSeverity]int{SeverityWarning: 1, SeverityWatch: 1, SeverityAdvisory: 1}, report.Summary.BySeverity)
	assert.Equal(t, 24, report.Summary.AnalysisPeriodHours)
	assert.Equal(t, "2026-07-01T08:30:00+02:00", report.Summary.Timestamp)
	assert.Equal(t, []string{recommendWarning, recommendWatch}, report.Recommendations)

	require.NotNil(t, report.Conditions)
	assert.Equal(t, 36.0, *report.Conditions.Temperature)
	assert.Equal(t, 42.0, *report.Conditions.AirQualityAQI)
}

func TestSummarizeAlerts_Empty(t *testing.T) {
	report := SummarizeAlerts(nil, nil, nil, 12, snapshotNow)

	assert.NotNil(t, report.Alerts)
	assert.Equal(t, 0, report.Summary.TotalAlerts)
	assert.Nil(t, report.Conditions)
	assert.Equal(t, []string{recommendNone}, report.Recommendations)
}
