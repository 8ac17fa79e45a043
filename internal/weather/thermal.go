package weather

import "math"

// windChillMinKmh is the lowest wind speed at which the wind-chill formula applies.
const windChillMinKmh = 4.8

// WindChill returns the perceived temperature in °C for an air temperature in
// °C and a wind speed in km/h, using the North-American wind-chill index.
// Below 4.8 km/h the temperature is returned unchanged.
func WindChill(tempC, windKmh float64) float64 {
	if windKmh < windChillMinKmh {
		return tempC
	}

	tempF := tempC*9/5 + 32
	windMph := windKmh * 0.621371
	v := math.Pow(windMph, 0.16)

	wcF := 35.74 + 0.6215*tempF - 35.75*v + 0.4275*tempF*v
	return round1((wcF - 32) * 5 / 9)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
