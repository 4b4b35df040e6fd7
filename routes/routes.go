package routes

import (
	"net/http"
	"time"

	"wayfare/handlers"
	"wayfare/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAssistantRoutes registers the conversational endpoints.
func RegisterAssistantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/assistant")
	{
		api.POST("/turn", hb.ProcessTurnHandler)
		api.GET("/conversation/:sessionID", hb.GetConversationHandler)
		api.DELETE("/conversation/:sessionID", hb.ResetConversationHandler)
	}
}

// RegisterRecommendationRoutes registers the standalone explore endpoints.
func RegisterRecommendationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/recs")
	{
		api.GET("/nearby", hb.NearbyRecommendationsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Wayfare"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Ambient-Lat", "X-Ambient-Lon"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.AmbientLocationMiddleware())

	RegisterAssistantRoutes(r, hb)
	RegisterRecommendationRoutes(r, hb)
	RegisterHealthRoute(r)
}
