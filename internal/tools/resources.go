package tools

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/i474232898/open-meteo-tools/internal/weather"
)

//go:embed data/*.json
var dataFS embed.FS

const resourceScheme = "weather://"

// Resource is static reference data addressed by a weather:// URI.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mime_type"`

	content json.RawMessage
}

// Resources holds the reference data served alongside the tools.
type Resources struct {
	byName map[string]*Resource
	order  []*Resource
}

// NewResources loads the embedded reference data and builds the weather
// code table.
func NewResources() (*Resources, error) {
	codes, err := weatherCodesDocument()
	if err != nil {
		return nil, err
	}

	r := &Resources{byName: make(map[string]*Resource)}
	r.add("codes", "WMO weather codes with description, category, severity and travel impact. Use it to interpret weather_code values.", codes)

	files := []struct{ name, file, description string }{
		{"parameters", "weather-parameters.json", "Hourly, daily, snow, air-quality and marine parameters with units."},
		{"swiss-locations", "swiss-locations.json", "Popular Swiss cities, mountains, passes and lakes with coordinates and elevation."},
		{"swiss-ski-resorts", "swiss-ski-resorts.json", "Major Swiss ski resorts with coordinates and lift elevations."},
		{"aqi-reference", "aqi-reference.json", "European AQI, US AQI, UV index and pollen scales with health guidance."},
	}
	for _, f := range files {
		raw, err := dataFS.ReadFile("data/" + f.file)
		if err != nil {
			return nil, fmt.Errorf("read resource %s: %w", f.name, err)
		}
		if !json.Valid(raw) {
			return nil, fmt.Errorf("resource %s: invalid JSON", f.name)
		}
		r.add(f.name, f.description, raw)
	}
	return r, nil
}

func (r *Resources) add(name, description string, content json.RawMessage) {
	res := &Resource{
		URI:         resourceScheme + name,
		Name:        name,
		Description: description,
		MimeType:    "application/json",
		content:     content,
	}
	r.byName[name] = res
	r.order = append(r.order, res)
}

// List returns the resources in registration order.
func (r *Resources) List() []Resource {
	out := make([]Resource, len(r.order))
	for i, res := range r.order {
		out[i] = *res
	}
	return out
}

// Read returns the content of a resource. Both "codes" and "weather://codes"
// address the same resource, as does the legacy "weather-codes" form.
func (r *Resources) Read(name string) (json.RawMessage, error) {
	name = strings.TrimPrefix(name, resourceScheme)
	res, ok := r.byName[name]
	if !ok {
		res, ok = r.byName[strings.TrimPrefix(name, "weather-")]
	}
	if !ok {
		return nil, fmt.Errorf("%w: resource %q", ErrNotFound, name)
	}
	return res.content, nil
}

type codeEntry struct {
	weather.WeatherCodeInfo
	TravelImpact string `json:"travel_impact"`
}

func weatherCodesDocument() (json.RawMessage, error) {
	infos := weather.WeatherCodes()
	entries := make([]codeEntry, len(infos))
	for i, info := range infos {
		entries[i] = codeEntry{WeatherCodeInfo: info, TravelImpact: weather.TravelImpact(info.Code)}
	}
	raw, err := json.Marshal(map[string]any{
		"source": "WMO code table 4677 as used by Open-Meteo",
		"codes":  entries,
	})
	if err != nil {
		return nil, fmt.Errorf("encode weather codes: %w", err)
	}
	return raw, nil
}
