package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Result is a resolved place for a free-text query.
type Result struct {
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Country    string  `json:"country,omitempty"`
	Timezone   string  `json:"timezone,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Geocoder resolves free text to coordinates. A nil result with nil error
// means no match.
type Geocoder interface {
	Geocode(ctx context.Context, text string) (*Result, error)
}

var geoHTTPClient = &http.Client{Timeout: 5 * time.Second}

// OpenMeteoGeocoder resolves place names through the Open-Meteo geocoding API.
type OpenMeteoGeocoder struct{}

func NewOpenMeteoGeocoder() *OpenMeteoGeocoder {
	return &OpenMeteoGeocoder{}
}

func (g *OpenMeteoGeocoder) Geocode(ctx context.Context, text string) (*Result, error) {
	if text == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf(
		"https://geocoding-api.open-meteo.com/v1/search?name=%s&count=1&format=json",
		url.QueryEscape(text),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := geoHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding API returned status %d", resp.StatusCode)
	}

	var payload struct {
		Results []struct {
			Name       string  `json:"name"`
			Latitude   float64 `json:"latitude"`
			Longitude  float64 `json:"longitude"`
			Country    string  `json:"country"`
			Timezone   string  `json:"timezone"`
			Population int     `json:"population"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if len(payload.Results) == 0 {
		return nil, nil
	}

	r := payload.Results[0]
	confidence := 0.5
	if r.Population > 0 {
		confidence = 0.9
	}
	return &Result{
		Name:       r.Name,
		Lat:        r.Latitude,
		Lon:        r.Longitude,
		Country:    r.Country,
		Timezone:   r.Timezone,
		Confidence: confidence,
	}, nil
}
