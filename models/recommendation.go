package models

import "time"

// LatLng is a plain coordinate pair used by the provider clients.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Coarse time-of-day buckets used as the fast-cache shard key.
const (
	BucketMorning   = "morning"
	BucketAfternoon = "afternoon"
	BucketEvening   = "evening"
	BucketNight     = "night"
)

// PlaceItem is one nearby place as returned by the places provider.
type PlaceItem struct {
	PlaceID     string   `json:"placeId"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	Rating      float64  `json:"rating,omitempty"`
	RatingCount int      `json:"ratingCount,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Address     string   `json:"address,omitempty"`
	OpenNow     *bool    `json:"openNow,omitempty"`
	DistanceKm  float64  `json:"distanceKm,omitempty"`
}

// PackMeta identifies a cached pack.
type PackMeta struct {
	Cell        string    `json:"cell"`
	Date        string    `json:"date"`
	Bucket      string    `json:"bucket,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
	RadiusKm    float64   `json:"radiusKm,omitempty"`
}

// PlaceGroup is one category of places inside a base pack.
type PlaceGroup struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Items     []PlaceItem `json:"items"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// BasePack is the slow-changing place catalog for one cell and date.
// Packs are immutable once written; a refresh replaces the whole value.
type BasePack struct {
	Meta   PackMeta     `json:"meta"`
	Groups []PlaceGroup `json:"groups"`
}

// CurrentWeather is the current-conditions snapshot.
type CurrentWeather struct {
	TemperatureC float64 `json:"temperatureC"`
	ApparentC    float64 `json:"apparentC"`
	WindKph      float64 `json:"windKph"`
	WeatherCode  int     `json:"weatherCode"`
}

// WeatherSummary is the weather provider's answer for a location.
type WeatherSummary struct {
	Current   CurrentWeather `json:"current"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// DeltaPack is the fast-changing overlay for one cell, date and time bucket.
type DeltaPack struct {
	Meta    PackMeta        `json:"meta"`
	Weather *WeatherSummary `json:"weather,omitempty"`
	OpenNow map[string]bool `json:"openNow,omitempty"`
}

// NewsItem is one travel-relevant local headline.
type NewsItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

// TripSlot assigns one place pick to a time of day.
type TripSlot struct {
	TimeOfDay string    `json:"timeOfDay"`
	Place     PlaceItem `json:"place"`
}

// TripDay is one day of a synthesized itinerary.
type TripDay struct {
	Day   int        `json:"day"`
	Slots []TripSlot `json:"slots"`
}

// TripPlan is a short synthesized itinerary for an active trip.
type TripPlan struct {
	Days []TripDay `json:"days"`
}
