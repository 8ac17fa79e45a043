package weather

import (
	"fmt"
	"time"
)

// FormatTemperature renders a temperature with one decimal, e.g. "15.2°C".
func FormatTemperature(celsius float64) string {
	return fmt.Sprintf("%.1f°C", celsius)
}

// FormatPrecipitation renders a precipitation amount with an intensity label.
func FormatPrecipitation(mm float64) string {
	switch {
	case mm == 0:
		return "No precipitation"
	case mm < 1:
		return fmt.Sprintf("%.1fmm (light)", mm)
	case mm < 5:
		return fmt.Sprintf("%.1fmm (moderate)", mm)
	case mm < 10:
		return fmt.Sprintf("%.1fmm (heavy)", mm)
	default:
		return fmt.Sprintf("%.1fmm (very heavy)", mm)
	}
}

// SeasonalAdvice returns outdoor-activity advice for the Alpine season of month.
func SeasonalAdvice(month time.Month) string {
	switch month {
	case time.December, time.January, time.February:
		return "Winter: Ideal for skiing and snow sports. Dress warmly and check avalanche warnings."
	case time.March, time.April, time.May:
		return "Spring: Variable conditions. Snow melting at lower elevations. Good for hiking as weather improves."
	case time.June, time.July, time.August:
		return "Summer: Best for hiking, climbing, and outdoor activities. Watch for afternoon thunderstorms in mountains."
	case time.September, time.October, time.November:
		return "Autumn: Beautiful colors, but weather becoming unpredictable. Early snow possible at high elevations."
	}
	return "Check current conditions before outdoor activities."
}
