package api

import (
	"net/http"

	"go.uber.org/zap"
	"questledger/internal/notifier"
	"questledger/internal/service"
	"questledger/pkg/auth"
	"questledger/pkg/logger"

	"github.com/gin-gonic/gin"
)

type claimRoutes struct {
	ds     service.DailyClaimServiceI
	minter RewardMinter
	notify notifier.Notifier
}

func NewClaimRoutes(handler *gin.RouterGroup, ds service.DailyClaimServiceI, a *auth.TokenAuth,
	m RewardMinter, n notifier.Notifier) {

	r := &claimRoutes{ds: ds, minter: m, notify: n}

	h := handler.Group("/claims")
	h.Use(a.Middleware())
	{
		h.POST("/:address", r.SetDailyClaimed)
	}
}

func (r *claimRoutes) SetDailyClaimed(c *gin.Context) {
	log := logger.Logger()

	caller, ok := auth.CallerAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	userAddress := c.Param("address")

	amount, err := r.ds.SetDailyClaimed(c.Request.Context(), caller, userAddress)
	if err != nil {
		log.Error("failed to set daily claim",
			zap.String("user_address", userAddress),
			zap.Error(err))
		respondError(c, err)
		return
	}

	minted := true
	if err := r.minter.Mint(c.Request.Context(), userAddress, amount); err != nil {
		minted = false
		log.Error("mint failed after daily claim",
			zap.String("user_address", userAddress),
			zap.Error(err))
		r.notify.MintFailed(userAddress, amount, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"user_address": userAddress,
		"amount":       amount,
		"minted":       minted,
	})
}
