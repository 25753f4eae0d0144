package http

import (
	"net/http"

	"github.com/gdugdh24/matrimony-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/matrimony-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	matchHandler   *handler.MatchHandler
	authMiddleware *middleware.AuthMiddleware
	allowedOrigins []string
	logger         *zap.Logger
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	matchHandler *handler.MatchHandler,
	authMiddleware *middleware.AuthMiddleware,
	allowedOrigins []string,
	logger *zap.Logger,
) *Router {
	return &Router{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		matchHandler:   matchHandler,
		authMiddleware: authMiddleware,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

func (r *Router) Setup() *gin.Engine {
	handler.RegisterValidators()

	router := gin.New()
	router.Use(
		middleware.RecoveryMiddleware(r.logger),
		middleware.LoggingMiddleware(r.logger),
		middleware.CORS(r.allowedOrigins),
	)

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", r.authHandler.Signup)
			auth.POST("/verify-otp", r.authHandler.VerifyOTP)
			auth.POST("/login", r.authHandler.Login)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			profile := protected.Group("/profile")
			{
				profile.POST("/basic", r.profileHandler.CreateBasicProfile)
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PATCH("/me", r.profileHandler.UpdateMyProfile)
				profile.PUT("/full", r.profileHandler.RegisterFullProfile)
				profile.GET("/matches", r.matchHandler.GetMatches)
			}
		}
	}

	return router
}
