package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"wayfare/models"
)

// Service summarizes current conditions for a location. A nil summary with
// nil error means the provider had nothing for that location.
type Service interface {
	Summarize(ctx context.Context, loc models.LatLng, timezone string) (*models.WeatherSummary, error)
}

var weatherHTTPClient = &http.Client{Timeout: 5 * time.Second}

// OpenMeteoService fetches current weather from the Open-Meteo forecast API.
type OpenMeteoService struct{}

func NewOpenMeteoService() *OpenMeteoService {
	return &OpenMeteoService{}
}

func (s *OpenMeteoService) Summarize(ctx context.Context, loc models.LatLng, timezone string) (*models.WeatherSummary, error) {
	tz := timezone
	if tz == "" {
		tz = "auto"
	}
	endpoint := fmt.Sprintf(
		"https://api.open-meteo.com/v1/forecast?latitude=%.4f&longitude=%.4f&current=temperature_2m,apparent_temperature,wind_speed_10m,weather_code&timezone=%s",
		loc.Lat, loc.Lon, url.QueryEscape(tz),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := weatherHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}

	var payload struct {
		Current struct {
			Temperature float64 `json:"temperature_2m"`
			Apparent    float64 `json:"apparent_temperature"`
			WindSpeed   float64 `json:"wind_speed_10m"`
			WeatherCode int     `json:"weather_code"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	return &models.WeatherSummary{
		Current: models.CurrentWeather{
			TemperatureC: payload.Current.Temperature,
			ApparentC:    payload.Current.Apparent,
			WindKph:      payload.Current.WindSpeed,
			WeatherCode:  payload.Current.WeatherCode,
		},
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// IsRainy reports whether a WMO weather code indicates precipitation.
func IsRainy(code int) bool {
	switch {
	case code >= 51 && code <= 67: // drizzle and rain
		return true
	case code >= 80 && code <= 82: // rain showers
		return true
	case code >= 95: // thunderstorms
		return true
	default:
		return false
	}
}
