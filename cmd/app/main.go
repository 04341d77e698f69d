package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"
	"questledger/internal/api"
	"questledger/internal/notifier"
	"questledger/internal/repository"
	"questledger/internal/service"
	"questledger/pkg/auth"
	"questledger/pkg/logger"
	"questledger/pkg/minter"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	roles, err := auth.NewRoles(cfg.Auth.OwnerAddress, cfg.Auth.BackendAddress)
	if err != nil {
		zapLogger.Fatal("Failed to initialize roles", zap.Error(err))
	}
	tokenAuth := auth.NewTokenAuth(cfg.Auth.JWTSecret)

	hub := api.NewEventHub()

	questService := service.NewQuestService(repo, roles, hub)
	dailyClaimService := service.NewDailyClaimService(repo, roles, hub, cfg.Ledger.Cooldown, cfg.Ledger.DailyClaimAmount)
	userService := service.NewUserService(repo, repo, cfg.Ledger.Cooldown)
	adminService := service.NewAdminService(roles)

	mintClient := minter.New(cfg.Minter.URL, cfg.Minter.Timeout)

	var alerts notifier.Notifier = notifier.Noop{}
	if cfg.Notifier.Enabled {
		alerts, err = notifier.NewTelegram(cfg.Notifier.TelegramBotToken, cfg.Notifier.ChatID)
		if err != nil {
			zapLogger.Fatal("Failed to initialize notifier", zap.Error(err))
		}
	}

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	corsConfig.AllowHeaders = []string{"*"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour

	router.Use(cors.New(corsConfig))

	a := router.Group("/api/v1")
	api.NewQuestRoutes(a, questService, tokenAuth, roles, mintClient, alerts)
	api.NewClaimRoutes(a, dailyClaimService, tokenAuth, mintClient, alerts)
	api.NewUserRoutes(a, userService)
	api.NewAdminRoutes(a, adminService, tokenAuth)
	api.NewEventRoutes(a, hub)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
