package middleware

import (
	"net/http"

	"go.uber.org/zap"
	"questledger/internal/service"
	"questledger/pkg/auth"
	"questledger/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequireRole gates operator-only routes. The service layer performs its own
// authority checks as well; this just fails fast before body parsing.
func RequireRole(roles service.RoleVerifier, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		caller, ok := auth.CallerAddress(c)
		if !ok {
			log.Error("caller address not found in context")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if !roles.HasRole(caller, role) {
			log.Info("unauthorized access attempt",
				zap.String("caller", caller),
				zap.String("required_role", role))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}

		c.Next()
	}
}
