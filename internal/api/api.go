package api

import (
	"context"
	"errors"
	"net/http"

	"questledger/internal/service"

	"github.com/gin-gonic/gin"
)

// RewardMinter is the external collaborator that credits tokens after the
// ledger records a completion or claim.
type RewardMinter interface {
	Mint(ctx context.Context, address string, amount int64) error
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "caller does not hold the required role"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
	case errors.Is(err, service.ErrQuestUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "quest is inactive or past its end date"})
	case errors.Is(err, service.ErrInvalidUser):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user address"})
	case errors.Is(err, service.ErrInvalidQuest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "quest requirements must not be empty"})
	case errors.Is(err, service.ErrInvalidSchedule):
		c.JSON(http.StatusBadRequest, gin.H{"error": "end date must be in the future"})
	case errors.Is(err, service.ErrAlreadyCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": "quest already completed for this user"})
	case errors.Is(err, service.ErrCooldownActive):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "The required time has not yet passed since your last claim",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
