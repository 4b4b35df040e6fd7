package handlers

import (
	"errors"
	"net/http"

	"wayfare/middleware"
	"wayfare/models"
	"wayfare/services/assistant"
	"wayfare/services/state"
	"wayfare/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProcessTurnHandler runs one assistant turn for a conversation.
func ProcessTurnHandler(svc assistant.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		var input models.TurnInput
		if err := c.ShouldBindJSON(&input); err != nil {
			logger.Error("Invalid turn request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.UserID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
			return
		}
		if input.SessionID == "" {
			input.SessionID = uuid.NewString()
		}
		if input.Ambient == nil {
			input.Ambient = middleware.AmbientLocation(c)
		}

		result, err := svc.ProcessTurn(c.Request.Context(), input)
		if err != nil {
			if errors.Is(err, assistant.ErrEmptyTurnInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Turn processing failed",
				zap.String("sessionId", input.SessionID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process turn"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GetConversationHandler returns the accumulated state for a session. A
// missing or foreign session yields the canonical default state, so the
// response never reveals whether the session exists.
func GetConversationHandler(store state.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionID")
		userID := c.Query("userId")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
			return
		}

		st, err := store.Load(c.Request.Context(), sessionID, userID)
		if err != nil {
			utils.GetLogger().Error("Conversation load failed",
				zap.String("sessionId", sessionID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversation"})
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

// ResetConversationHandler drops a conversation the caller owns.
func ResetConversationHandler(svc assistant.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionID")
		userID := c.Query("userId")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
			return
		}

		if err := svc.ResetConversation(c.Request.Context(), sessionID, userID); err != nil {
			if errors.Is(err, assistant.ErrConversationNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
				return
			}
			utils.GetLogger().Error("Conversation reset failed",
				zap.String("sessionId", sessionID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset conversation"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "reset"})
	}
}
