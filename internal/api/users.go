package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"questledger/internal/service"
	"questledger/pkg/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

type userRoutes struct {
	us service.UserServiceI
}

func NewUserRoutes(handler *gin.RouterGroup, us service.UserServiceI) {
	r := &userRoutes{us: us}

	h := handler.Group("/users")
	{
		h.GET("/:address", r.GetUserDetails)
	}
}

type UserDetailsResponse struct {
	Address                   string     `json:"address"`
	CompletedQuestIDs         []int64    `json:"completed_quest_ids"`
	TotalQuestsCompleted      int        `json:"total_quests_completed"`
	LastClaimTime             *time.Time `json:"last_claim_time,omitempty"`
	CanClaimDaily             bool       `json:"can_claim_daily"`
	TimeUntilNextClaimSeconds int64      `json:"time_until_next_claim_seconds"`
}

func (r *userRoutes) GetUserDetails(c *gin.Context) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
		return
	}

	details, err := r.us.GetUserDetails(c.Request.Context(), common.HexToAddress(address).Hex())
	if err != nil {
		logger.Logger().Error("failed to get user details",
			zap.String("address", address),
			zap.Error(err))
		respondError(c, err)
		return
	}

	completed := details.CompletedQuestIDs
	if completed == nil {
		completed = []int64{}
	}

	c.JSON(http.StatusOK, UserDetailsResponse{
		Address:                   details.Address,
		CompletedQuestIDs:         completed,
		TotalQuestsCompleted:      details.TotalQuestsCompleted,
		LastClaimTime:             details.LastClaimTime,
		CanClaimDaily:             details.CanClaimDaily,
		TimeUntilNextClaimSeconds: int64(details.TimeUntilNextClaim.Seconds()),
	})
}
