package weather

// HourlySnow holds hourly snow variables.
type HourlySnow struct {
	Time                     []string `json:"time"`
	Snowfall                 Series   `json:"snowfall,omitempty"`   // cm
	SnowDepth                Series   `json:"snow_depth,omitempty"` // m
	Temperature              Series   `json:"temperature_2m,omitempty"`
	ApparentTemperature      Series   `json:"apparent_temperature,omitempty"`
	WeatherCode              Series   `json:"weather_code,omitempty"`
	WindSpeed                Series   `json:"wind_speed_10m,omitempty"`
	WindGusts                Series   `json:"wind_gusts_10m,omitempty"`
	CloudCover               Series   `json:"cloud_cover,omitempty"`
	PrecipitationProbability Series   `json:"precipitation_probability,omitempty"`
}

// DailySnow holds daily snow aggregates.
type DailySnow struct {
	Time                        []string `json:"time"`
	SnowfallSum                 Series   `json:"snowfall_sum,omitempty"`
	SnowDepthMax                Series   `json:"snow_depth_max,omitempty"`
	TemperatureMax              Series   `json:"temperature_2m_max,omitempty"`
	TemperatureMin              Series   `json:"temperature_2m_min,omitempty"`
	PrecipitationProbabilityMax Series   `json:"precipitation_probability_max,omitempty"`
	WindGustsMax                Series   `json:"wind_gusts_10m_max,omitempty"`
}

// SnowForecast is the snow-oriented forecast response.
type SnowForecast struct {
	Latitude             float64     `json:"latitude"`
	Longitude            float64     `json:"longitude"`
	Elevation            *float64    `json:"elevation,omitempty"`
	Timezone             string      `json:"timezone"`
	TimezoneAbbreviation string      `json:"timezone_abbreviation,omitempty"`
	UTCOffsetSeconds     int         `json:"utc_offset_seconds"`
	Hourly               *HourlySnow `json:"hourly,omitempty"`
	Daily                *DailySnow  `json:"daily,omitempty"`
}

// AirQualityCurrent holds the current air-quality snapshot.
type AirQualityCurrent struct {
	Time        string   `json:"time,omitempty"`
	EuropeanAQI *float64 `json:"european_aqi,omitempty"`
	USAQI       *float64 `json:"us_aqi,omitempty"`
	PM10        *float64 `json:"pm10,omitempty"`
	PM25        *float64 `json:"pm2_5,omitempty"`
	UVIndex     *float64 `json:"uv_index,omitempty"`
}

// AirQualityHourly holds hourly pollutant and pollen series. Pollen series are
// only populated for European locations.
type AirQualityHourly struct {
	Time            []string `json:"time"`
	EuropeanAQI     Series   `json:"european_aqi,omitempty"`
	USAQI           Series   `json:"us_aqi,omitempty"`
	PM10            Series   `json:"pm10,omitempty"`
	PM25            Series   `json:"pm2_5,omitempty"`
	CarbonMonoxide  Series   `json:"carbon_monoxide,omitempty"`
	NitrogenDioxide Series   `json:"nitrogen_dioxide,omitempty"`
	SulphurDioxide  Series   `json:"sulphur_dioxide,omitempty"`
	Ozone           Series   `json:"ozone,omitempty"`
	Dust            Series   `json:"dust,omitempty"`
	UVIndex         Series   `json:"uv_index,omitempty"`
	UVIndexClearSky Series   `json:"uv_index_clear_sky,omitempty"`
	Ammonia         Series   `json:"ammonia,omitempty"`
	AlderPollen     Series   `json:"alder_pollen,omitempty"`
	BirchPollen     Series   `json:"birch_pollen,omitempty"`
	GrassPollen     Series   `json:"grass_pollen,omitempty"`
	MugwortPollen   Series   `json:"mugwort_pollen,omitempty"`
	OlivePollen     Series   `json:"olive_pollen,omitempty"`
	RagweedPollen   Series   `json:"ragweed_pollen,omitempty"`
}

// AirQualityForecast is the air-quality API response.
type AirQualityForecast struct {
	Latitude         float64            `json:"latitude"`
	Longitude        float64            `json:"longitude"`
	Elevation        *float64           `json:"elevation,omitempty"`
	Timezone         string             `json:"timezone"`
	UTCOffsetSeconds int                `json:"utc_offset_seconds"`
	Current          *AirQualityCurrent `json:"current,omitempty"`
	Hourly           *AirQualityHourly  `json:"hourly,omitempty"`
}

// MarineHourly holds hourly wave variables.
type MarineHourly struct {
	Time               []string `json:"time"`
	WaveHeight         Series   `json:"wave_height,omitempty"`
	WaveDirection      Series   `json:"wave_direction,omitempty"`
	WavePeriod         Series   `json:"wave_period,omitempty"`
	WindWaveHeight     Series   `json:"wind_wave_height,omitempty"`
	WindWaveDirection  Series   `json:"wind_wave_direction,omitempty"`
	WindWavePeriod     Series   `json:"wind_wave_period,omitempty"`
	SwellWaveHeight    Series   `json:"swell_wave_height,omitempty"`
	SwellWaveDirection Series   `json:"swell_wave_direction,omitempty"`
	SwellWavePeriod    Series   `json:"swell_wave_period,omitempty"`
}

// MarineDaily holds daily wave aggregates.
type MarineDaily struct {
	Time                       []string `json:"time"`
	WaveHeightMax              Series   `json:"wave_height_max,omitempty"`
	WaveDirectionDominant      Series   `json:"wave_direction_dominant,omitempty"`
	WavePeriodMax              Series   `json:"wave_period_max,omitempty"`
	SwellWaveHeightMax         Series   `json:"swell_wave_height_max,omitempty"`
	SwellWaveDirectionDominant Series   `json:"swell_wave_direction_dominant,omitempty"`
	SwellWavePeriodMax         Series   `json:"swell_wave_period_max,omitempty"`
}

// MarineForecast is the marine API response.
type MarineForecast struct {
	Latitude         float64       `json:"latitude"`
	Longitude        float64       `json:"longitude"`
	Timezone         string        `json:"timezone"`
	UTCOffsetSeconds int           `json:"utc_offset_seconds"`
	Hourly           *MarineHourly `json:"hourly,omitempty"`
	Daily            *MarineDaily  `json:"daily,omitempty"`
}

// GeoLocation is a single geocoding match.
type GeoLocation struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Elevation   *float64 `json:"elevation,omitempty"`
	FeatureCode string   `json:"feature_code,omitempty"`
	CountryCode string   `json:"country_code,omitempty"`
	Country     string   `json:"country,omitempty"`
	Timezone    string   `json:"timezone,omitempty"`
	Population  *int64   `json:"population,omitempty"`
	Admin1      string   `json:"admin1,omitempty"`
	Admin2      string   `json:"admin2,omitempty"`
	Admin3      string   `json:"admin3,omitempty"`
	Admin4      string   `json:"admin4,omitempty"`
	Postcodes   []string `json:"postcodes,omitempty"`
}

// GeocodingResponse is the geocoding API response.
type GeocodingResponse struct {
	Results          []GeoLocation `json:"results"`
	GenerationTimeMs *float64      `json:"generationtime_ms,omitempty"`
}
