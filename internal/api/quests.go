package api

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"questledger/internal/middleware"
	"questledger/internal/model"
	"questledger/internal/notifier"
	"questledger/internal/service"
	"questledger/pkg/auth"
	"questledger/pkg/logger"

	"github.com/gin-gonic/gin"
)

type questRoutes struct {
	qs     service.QuestServiceI
	minter RewardMinter
	notify notifier.Notifier
}

func NewQuestRoutes(handler *gin.RouterGroup, qs service.QuestServiceI, a *auth.TokenAuth,
	roles service.RoleVerifier, m RewardMinter, n notifier.Notifier) {

	r := &questRoutes{qs: qs, minter: m, notify: n}

	h := handler.Group("/quests")
	{
		h.GET("", r.GetAllQuests)
		h.GET("/:quest_id", r.GetQuest)
	}

	protected := handler.Group("/quests")
	protected.Use(a.Middleware())
	{
		protected.POST("/:quest_id/complete", r.CompleteQuest)

		admin := protected.Group("")
		admin.Use(middleware.RequireRole(roles, service.RoleOwner))
		{
			admin.POST("", r.CreateQuest)
			admin.PATCH("/:quest_id/active", r.SetQuestActive)
		}
	}
}

type CreateQuestRequest struct {
	Title                string    `json:"title" binding:"required"`
	Description          string    `json:"description"`
	Reward               int64     `json:"reward"`
	Requirements         []string  `json:"requirements"`
	EstimatedTimeMinutes int       `json:"estimated_time_minutes"`
	EndDate              time.Time `json:"end_date" binding:"required"`
}

type QuestResponse struct {
	ID                   int64     `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Reward               int64     `json:"reward"`
	Requirements         []string  `json:"requirements"`
	EstimatedTimeMinutes int       `json:"estimated_time_minutes"`
	IsActive             bool      `json:"is_active"`
	CreatedAt            time.Time `json:"created_at"`
	EndDate              time.Time `json:"end_date"`
}

func questToResponse(q *model.Quest) QuestResponse {
	return QuestResponse{
		ID:                   q.ID,
		Title:                q.Title,
		Description:          q.Description,
		Reward:               q.Reward,
		Requirements:         q.Requirements,
		EstimatedTimeMinutes: q.EstimatedTimeMinutes,
		IsActive:             q.IsActive,
		CreatedAt:            q.CreatedAt,
		EndDate:              q.EndDate,
	}
}

func (r *questRoutes) CreateQuest(c *gin.Context) {
	log := logger.Logger()

	caller, ok := auth.CallerAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreateQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind create quest request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := r.qs.CreateQuest(c.Request.Context(), caller, &model.Quest{
		Title:                req.Title,
		Description:          req.Description,
		Reward:               req.Reward,
		Requirements:         req.Requirements,
		EstimatedTimeMinutes: req.EstimatedTimeMinutes,
		EndDate:              req.EndDate,
	})
	if err != nil {
		log.Error("failed to create quest", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"quest_id": id})
}

type CompleteQuestRequest struct {
	UserAddress string `json:"user_address" binding:"required"`
}

func (r *questRoutes) CompleteQuest(c *gin.Context) {
	log := logger.Logger()

	caller, ok := auth.CallerAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	questID, err := strconv.ParseInt(c.Param("quest_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quest_id"})
		return
	}

	var req CompleteQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reward, err := r.qs.CompleteQuestForUser(c.Request.Context(), caller, req.UserAddress, questID)
	if err != nil {
		log.Error("failed to complete quest",
			zap.Int64("quest_id", questID),
			zap.String("user_address", req.UserAddress),
			zap.Error(err))
		respondError(c, err)
		return
	}

	// The completion is committed at this point. A mint failure is reported
	// as partial success, never rolled back.
	minted := true
	if err := r.minter.Mint(c.Request.Context(), req.UserAddress, reward); err != nil {
		minted = false
		log.Error("mint failed after quest completion",
			zap.Int64("quest_id", questID),
			zap.String("user_address", req.UserAddress),
			zap.Error(err))
		r.notify.MintFailed(req.UserAddress, reward, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"quest_id":     questID,
		"user_address": req.UserAddress,
		"reward":       reward,
		"minted":       minted,
	})
}

type SetQuestActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (r *questRoutes) SetQuestActive(c *gin.Context) {
	log := logger.Logger()

	caller, ok := auth.CallerAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	questID, err := strconv.ParseInt(c.Param("quest_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quest_id"})
		return
	}

	var req SetQuestActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := r.qs.SetQuestActive(c.Request.Context(), caller, questID, *req.Active); err != nil {
		log.Error("failed to update quest active flag", zap.Int64("quest_id", questID), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

func (r *questRoutes) GetQuest(c *gin.Context) {
	questID, err := strconv.ParseInt(c.Param("quest_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quest_id"})
		return
	}

	quest, err := r.qs.GetQuest(c.Request.Context(), questID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, questToResponse(quest))
}

func (r *questRoutes) GetAllQuests(c *gin.Context) {
	quests, err := r.qs.GetAllQuests(c.Request.Context())
	if err != nil {
		logger.Logger().Error("failed to list quests", zap.Error(err))
		respondError(c, err)
		return
	}

	response := make([]QuestResponse, len(quests))
	for i, q := range quests {
		response[i] = questToResponse(q)
	}

	c.JSON(http.StatusOK, response)
}
