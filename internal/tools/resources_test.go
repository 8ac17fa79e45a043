package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResources_List(t *testing.T) {
	r, err := NewResources()
	require.NoError(t, err)

	var uris []string
	for _, res := range r.List() {
		uris = append(uris, res.URI)
		assert.Equal(t, "application/json", res.MimeType)
		assert.NotEmpty(t, res.Description)
	}
	assert.Equal(t, []string{
		"weather://codes",
		"weather://parameters",
		"weather://swiss-locations",
		"weather://swiss-ski-resorts",
		"weather://aqi-reference",
	}, uris)
}

func TestResources_ReadByNameOrURI(t *testing.T) {
	r, err := NewResources()
	require.NoError(t, err)

	byName, err := r.Read("swiss-ski-resorts")
	require.NoError(t, err)
	byURI, err := r.Read("weather://swiss-ski-resorts")
	require.NoError(t, err)
	assert.Equal(t, byName, byURI)

	var doc struct {
		Resorts []struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"resorts"`
	}
	require.NoError(t, json.Unmarshal(byName, &doc))
	assert.Len(t, doc.Resorts, 16)
	for _, resort := range doc.Resorts {
		assert.InDelta(t, 46.5, resort.Latitude, 1.5, resort.Name)
		assert.InDelta(t, 8.2, resort.Longitude, 2.5, resort.Name)
	}

	_, err = r.Read("weather-codes")
	assert.NoError(t, err)

	_, err = r.Read("weather://forecast")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResources_CodesCarryTravelImpact(t *testing.T) {
	r, err := NewResources()
	require.NoError(t, err)

	raw, err := r.Read("codes")
	require.NoError(t, err)

	var doc struct {
		Codes []struct {
			Code         int    `json:"code"`
			Description  string `json:"description"`
			Category     string `json:"category"`
			TravelImpact string `json:"travel_impact"`
		} `json:"codes"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.NotEmpty(t, doc.Codes)
	assert.Equal(t, 0, doc.Codes[0].Code)
	assert.Equal(t, "Clear sky", doc.Codes[0].Description)
	for _, c := range doc.Codes {
		assert.NotEmpty(t, c.TravelImpact, "code %d", c.Code)
	}
}
