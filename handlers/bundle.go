package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Assistant endpoints
	ProcessTurnHandler       gin.HandlerFunc
	GetConversationHandler   gin.HandlerFunc
	ResetConversationHandler gin.HandlerFunc

	// Recommendation endpoints
	NearbyRecommendationsHandler gin.HandlerFunc
}
