package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserIDKey is the gin context key holding the authenticated uuid.UUID.
const UserIDKey = "user_id"

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (uuid.UUID, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	logger   *zap.Logger
}

func NewAuthMiddleware(verifier TokenVerifier, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RequireAuth rejects requests without a valid "Bearer <token>" header.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authorization header is required",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization format, expected 'Bearer {token}'",
			})
			return
		}

		userID, err := m.verifier.VerifyToken(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			m.logger.Debug("token validation failed",
				zap.Error(err),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
