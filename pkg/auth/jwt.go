package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"questledger/pkg/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const callerContextKey = "caller_address"

type TokenAuth struct {
	secret []byte
}

func NewTokenAuth(secret string) *TokenAuth {
	return &TokenAuth{secret: []byte(secret)}
}

type ledgerClaims struct {
	Address string `json:"address"`
	jwt.RegisteredClaims
}

// IssueToken signs a bearer token binding the caller's wallet address. Used
// by operator tooling to mint credentials for the owner and the backend
// authority.
func (t *TokenAuth) IssueToken(address string, ttl time.Duration) (string, error) {
	if !common.IsHexAddress(address) {
		return "", errors.New("invalid address")
	}

	now := time.Now().UTC()
	claims := ledgerClaims{
		Address: common.HexToAddress(address).Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *TokenAuth) ParseToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &ledgerClaims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(*ledgerClaims)
	if !ok || !common.IsHexAddress(claims.Address) {
		return "", errors.New("invalid token claims")
	}

	return common.HexToAddress(claims.Address).Hex(), nil
}

func (t *TokenAuth) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Info("missing authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Info("invalid authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		address, err := t.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			log.Info("invalid bearer token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(callerContextKey, address)
		c.Next()
	}
}

// CallerAddress returns the authenticated caller address set by Middleware.
func CallerAddress(c *gin.Context) (string, bool) {
	value, exists := c.Get(callerContextKey)
	if !exists {
		return "", false
	}

	address, ok := value.(string)
	return address, ok
}
