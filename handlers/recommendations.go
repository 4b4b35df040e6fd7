package handlers

import (
	"net/http"
	"strconv"
	"time"

	"wayfare/config"
	"wayfare/models"
	recsService "wayfare/services/recs"
	"wayfare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NearbyRecommendationsHandler serves scored nearby places directly, without
// a conversation, for map and explore surfaces.
func NearbyRecommendationsHandler(recs recsService.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, err := strconv.ParseFloat(c.Query("lat"), 64)
		if err != nil || lat < -90 || lat > 90 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "valid lat is required"})
			return
		}
		lon, err := strconv.ParseFloat(c.Query("lon"), 64)
		if err != nil || lon < -180 || lon > 180 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "valid lon is required"})
			return
		}

		radius := config.AppConfig.TripRadiusKm
		if raw := c.Query("radiusKm"); raw != "" {
			if parsed, perr := strconv.ParseFloat(raw, 64); perr == nil && parsed > 0 && parsed <= 50 {
				radius = parsed
			}
		}
		timezone := c.Query("tz")

		result, err := recs.Recommendations(c.Request.Context(),
			models.LatLng{Lat: lat, Lon: lon}, timezone, radius, time.Now())
		if err != nil {
			utils.GetLogger().Error("Nearby recommendations failed",
				zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recommendations"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
