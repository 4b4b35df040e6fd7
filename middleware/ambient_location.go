package middleware

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"wayfare/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AmbientLocationKey is the context key under which the caller's coarse
// location is stored, when one could be determined.
const AmbientLocationKey = "ambientLocation"

// ipLocation is the geolocation answer for one client IP.
type ipLocation struct {
	IP        string  `json:"ip"`
	City      string  `json:"city"`
	Country   string  `json:"country_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// geoCache caches geolocation results keyed by IP address.
var geoCache = make(map[string]*ipLocation)
var cacheMutex sync.RWMutex

var geoLookupClient = http.Client{Timeout: 5 * time.Second}

// isPrivateIP checks if an IP is private or loopback.
func isPrivateIP(ip string) bool {
	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}
	if parsedIP.IsLoopback() {
		return true
	}
	privateIPBlocks := []*net.IPNet{
		{IP: net.IPv4(10, 0, 0, 0), Mask: net.CIDRMask(8, 32)},
		{IP: net.IPv4(172, 16, 0, 0), Mask: net.CIDRMask(12, 32)},
		{IP: net.IPv4(192, 168, 0, 0), Mask: net.CIDRMask(16, 32)},
	}
	for _, block := range privateIPBlocks {
		if block.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// lookupIPLocation resolves a client IP through ipapi.co and caches the
// result. Private IPs and lookup failures yield nil, never an error: the
// ambient location is a best-effort hint.
func lookupIPLocation(ip string, logger *zap.Logger) *ipLocation {
	cacheMutex.RLock()
	if loc, exists := geoCache[ip]; exists {
		cacheMutex.RUnlock()
		return loc
	}
	cacheMutex.RUnlock()

	if isPrivateIP(ip) {
		return nil
	}

	url := fmt.Sprintf("https://ipapi.co/%s/json/", ip)
	resp, err := geoLookupClient.Get(url)
	if err != nil {
		logger.Warn("IP geolocation lookup failed", zap.String("ip", ip), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		logger.Warn("IP geolocation API returned non-OK status", zap.String("ip", ip), zap.Int("status", resp.StatusCode))
		return nil
	}

	var loc ipLocation
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		logger.Warn("Failed to decode IP geolocation response", zap.String("ip", ip), zap.Error(err))
		return nil
	}
	if loc.Latitude == 0 && loc.Longitude == 0 {
		return nil
	}

	cacheMutex.Lock()
	geoCache[ip] = &loc
	cacheMutex.Unlock()
	return &loc
}

// AmbientLocationMiddleware determines the caller's coarse location and sets
// it in the context as a models.LatLng. An explicit X-Ambient-Lat/Lon header
// pair from the client wins over IP geolocation. When nothing resolves the
// request proceeds without an ambient location.
func AmbientLocationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()

		if lat, lon, ok := headerLatLon(c); ok {
			c.Set(AmbientLocationKey, &models.LatLng{Lat: lat, Lon: lon})
			c.Next()
			return
		}

		ip := clientIP(c)
		if ip == "" {
			c.Next()
			return
		}
		if loc := lookupIPLocation(ip, logger); loc != nil {
			c.Set(AmbientLocationKey, &models.LatLng{Lat: loc.Latitude, Lon: loc.Longitude})
		}
		c.Next()
	}
}

func headerLatLon(c *gin.Context) (float64, float64, bool) {
	latStr := c.GetHeader("X-Ambient-Lat")
	lonStr := c.GetHeader("X-Ambient-Lon")
	if latStr == "" || lonStr == "" {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}

// AmbientLocation reads the location set by AmbientLocationMiddleware.
func AmbientLocation(c *gin.Context) *models.LatLng {
	v, exists := c.Get(AmbientLocationKey)
	if !exists {
		return nil
	}
	loc, ok := v.(*models.LatLng)
	if !ok {
		return nil
	}
	return loc
}
