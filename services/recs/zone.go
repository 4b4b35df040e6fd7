package recs

import (
	"fmt"
	"math"
	"time"

	"wayfare/models"
)

// Zone resolution bounds. Resolution r buckets the world into cells of
// 1/2^r degrees, so resolution 5 is roughly 3.5 km at the equator.
const (
	MinResolution     = 1
	MaxResolution     = 7
	DefaultResolution = 5
)

// ResolveZone maps coordinates to a discrete grid cell id at the given
// resolution. The id is the cache sharding key: identical inputs always
// yield identical ids, and coordinates more than one cell apart differ.
func ResolveZone(loc models.LatLng, resolution int) string {
	if resolution < MinResolution {
		resolution = MinResolution
	}
	if resolution > MaxResolution {
		resolution = MaxResolution
	}
	size := 1.0 / float64(uint(1)<<resolution)
	latIdx := int(math.Floor((loc.Lat + 90) / size))
	lonIdx := int(math.Floor((loc.Lon + 180) / size))
	return fmt.Sprintf("g%d:%d:%d", resolution, latIdx, lonIdx)
}

// ResolveTimeBucket maps local time to one of the four coarse buckets. An
// unknown timezone falls back to UTC.
func ResolveTimeBucket(t time.Time, timezone string) string {
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		loc = time.UTC
	}
	switch h := t.In(loc).Hour(); {
	case h >= 5 && h < 11:
		return models.BucketMorning
	case h >= 11 && h < 17:
		return models.BucketAfternoon
	case h >= 17 && h < 22:
		return models.BucketEvening
	default:
		return models.BucketNight
	}
}

// LocalDate formats the calendar date at the given timezone.
func LocalDate(t time.Time, timezone string) string {
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01-02")
}

// BaseKey is the cache key of the slow-changing place catalog tier.
func BaseKey(cell, date string) string {
	return fmt.Sprintf("base:%s:%s", cell, date)
}

// DeltaKey is the cache key of the fast-changing weather/open-now tier.
func DeltaKey(cell, date, bucket string) string {
	return fmt.Sprintf("delta:%s:%s:%s", cell, date, bucket)
}
