package api

import (
	"net/http"

	"go.uber.org/zap"
	"questledger/internal/service"
	"questledger/pkg/auth"
	"questledger/pkg/logger"

	"github.com/gin-gonic/gin"
)

type adminRoutes struct {
	as service.AdminServiceI
}

func NewAdminRoutes(handler *gin.RouterGroup, as service.AdminServiceI, a *auth.TokenAuth) {
	r := &adminRoutes{as: as}

	h := handler.Group("/admin")
	h.Use(a.Middleware())
	{
		h.POST("/ownership", r.TransferOwnership)
	}
}

type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner" binding:"required"`
}

func (r *adminRoutes) TransferOwnership(c *gin.Context) {
	caller, ok := auth.CallerAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := r.as.TransferOwnership(caller, req.NewOwner); err != nil {
		logger.Logger().Error("failed to transfer ownership", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}
