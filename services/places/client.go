package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"wayfare/models"
	"wayfare/utils"
)

// Provider returns nearby places of one category around a location.
type Provider interface {
	Nearby(ctx context.Context, loc models.LatLng, radiusKm float64, category, keyword string, limit int) ([]models.PlaceItem, error)
}

var placesHTTPClient = &http.Client{Timeout: 6 * time.Second}

// GoogleProvider queries the Google Places Nearby Search API.
type GoogleProvider struct {
	APIKey string
}

func NewGoogleProvider(apiKey string) *GoogleProvider {
	return &GoogleProvider{APIKey: apiKey}
}

func (p *GoogleProvider) Nearby(ctx context.Context, loc models.LatLng, radiusKm float64, category, keyword string, limit int) ([]models.PlaceItem, error) {
	if p.APIKey == "" {
		return nil, fmt.Errorf("places API key not configured")
	}
	if radiusKm <= 0 {
		radiusKm = 3
	}
	if limit <= 0 || limit > 20 {
		limit = 20
	}

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%.6f,%.6f", loc.Lat, loc.Lon))
	params.Set("radius", fmt.Sprintf("%.0f", radiusKm*1000))
	params.Set("type", category)
	if keyword != "" {
		params.Set("keyword", keyword)
	}
	params.Set("key", p.APIKey)

	endpoint := "https://maps.googleapis.com/maps/api/place/nearbysearch/json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := placesHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places API returned status %d", resp.StatusCode)
	}

	var payload struct {
		Status  string `json:"status"`
		Results []struct {
			PlaceID  string `json:"place_id"`
			Name     string `json:"name"`
			Vicinity string `json:"vicinity"`
			Types    []string `json:"types"`
			Rating   float64 `json:"rating"`
			Total    int     `json:"user_ratings_total"`
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
			OpeningHours *struct {
				OpenNow bool `json:"open_now"`
			} `json:"opening_hours"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode places response: %w", err)
	}
	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places API status %s", payload.Status)
	}

	items := make([]models.PlaceItem, 0, limit)
	for _, r := range payload.Results {
		if len(items) == limit {
			break
		}
		item := models.PlaceItem{
			PlaceID:     r.PlaceID,
			Name:        r.Name,
			Category:    category,
			Lat:         r.Geometry.Location.Lat,
			Lon:         r.Geometry.Location.Lng,
			Rating:      r.Rating,
			RatingCount: r.Total,
			Tags:        r.Types,
			Address:     r.Vicinity,
			DistanceKm:  utils.HaversineKm(loc.Lat, loc.Lon, r.Geometry.Location.Lat, r.Geometry.Location.Lng),
		}
		if r.OpeningHours != nil {
			open := r.OpeningHours.OpenNow
			item.OpenNow = &open
		}
		items = append(items, item)
	}
	return items, nil
}
