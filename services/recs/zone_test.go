package recs

import (
	"testing"
	"time"

	"wayfare/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveZoneDeterministic(t *testing.T) {
	loc := models.LatLng{Lat: 25.7617, Lon: -80.1918}
	a := ResolveZone(loc, DefaultResolution)
	b := ResolveZone(loc, DefaultResolution)
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)
}

func TestResolveZoneSeparatesDistantPoints(t *testing.T) {
	miami := ResolveZone(models.LatLng{Lat: 25.7617, Lon: -80.1918}, DefaultResolution)
	lisbon := ResolveZone(models.LatLng{Lat: 38.7223, Lon: -9.1393}, DefaultResolution)
	assert.NotEqual(t, miami, lisbon)

	// Cell width at resolution 5 is 1/32 degree; a full degree apart is
	// always a different cell.
	near := ResolveZone(models.LatLng{Lat: 25.7617, Lon: -79.1918}, DefaultResolution)
	assert.NotEqual(t, miami, near)
}

func TestResolveZoneClampsResolution(t *testing.T) {
	loc := models.LatLng{Lat: 10, Lon: 10}
	assert.Equal(t, ResolveZone(loc, MinResolution), ResolveZone(loc, -3))
	assert.Equal(t, ResolveZone(loc, MaxResolution), ResolveZone(loc, 99))
}

func TestResolveTimeBucket(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{6, models.BucketMorning},
		{10, models.BucketMorning},
		{11, models.BucketAfternoon},
		{16, models.BucketAfternoon},
		{17, models.BucketEvening},
		{21, models.BucketEvening},
		{22, models.BucketNight},
		{3, models.BucketNight},
	}
	for _, tc := range cases {
		at := time.Date(2026, 9, 10, tc.hour, 30, 0, 0, time.UTC)
		assert.Equal(t, tc.want, ResolveTimeBucket(at, "UTC"), "hour %d", tc.hour)
	}
}

func TestResolveTimeBucketUsesLocalTime(t *testing.T) {
	// 22:00 UTC is 17:00 in New York (summer): evening there, night in UTC.
	at := time.Date(2026, 7, 10, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, models.BucketNight, ResolveTimeBucket(at, "UTC"))
	assert.Equal(t, models.BucketEvening, ResolveTimeBucket(at, "America/New_York"))
}

func TestResolveTimeBucketUnknownTimezoneFallsBack(t *testing.T) {
	at := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, ResolveTimeBucket(at, "UTC"), ResolveTimeBucket(at, "Not/AZone"))
}

func TestPackKeys(t *testing.T) {
	assert.Equal(t, "base:g5:3704:3194:2026-09-10", BaseKey("g5:3704:3194", "2026-09-10"))
	assert.Equal(t, "delta:g5:3704:3194:2026-09-10:morning", DeltaKey("g5:3704:3194", "2026-09-10", "morning"))
}
