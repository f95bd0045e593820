package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/labrinth/backend/internal/cache"
	apperrors "github.com/labrinth/backend/internal/errors"
	"github.com/labrinth/backend/internal/models"
)

// ErrorResponse sends a standardized error response
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// HandleError translates a domain error to its HTTP status and body
func HandleError(c *gin.Context, err error) {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= 500 {
		log.Printf("Unexpected error: %v", err)
	}
	c.JSON(httpErr.StatusCode, gin.H{"error": httpErr.Message, "code": httpErr.Code})
}

// publishEvent pushes a forum event onto the feed when Redis is configured.
// The feed is best-effort: a publish failure never fails the request.
func publishEvent(redis *cache.RedisClient, event string, payload interface{}) {
	if redis == nil {
		return
	}
	if err := redis.PublishEvent(models.WSMessage{Event: event, Payload: payload}); err != nil {
		log.Printf("Failed to publish %s event: %v", event, err)
	}
}
