package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/memearena/arena/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig, callbackCfg middleware.CallbackConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Session endpoints (public read access)
		v1.GET("/sessions/current", handler.GetCurrentSession)
		v1.GET("/sessions/:id", handler.GetSession)
		v1.GET("/sessions/:id/memes", handler.GetSessionMemes)

		// Session creation (operator only, API key authentication)
		v1.POST("/sessions", middleware.APIKeyAuth(authCfg), handler.StartSession)

		// Meme submission (requires authentication)
		v1.POST("/memes", middleware.Auth(authCfg), handler.CreateMeme)

		// Voting (open, duplicate defense is per wallet and per IP)
		v1.POST("/votes", handler.CastVote)

		// Contributions (requires authentication)
		v1.POST("/contributions", middleware.Auth(authCfg), handler.Contribute)
		v1.GET("/contributions/eligibility", handler.CheckEligibility)

		// Claim annotation (claim verifier service, API key authentication only)
		v1.POST("/contributions/:id/claim", middleware.APIKeyAuth(authCfg), handler.ClaimContribution)

		// Scheduled callback deliveries (HMAC signature verification)
		v1.POST("/callbacks", middleware.VerifyCallback(callbackCfg), handler.HandleCallback)

		// Arena configuration (operator only, API key authentication)
		v1.GET("/config", middleware.APIKeyAuth(authCfg), handler.GetArenaConfig)
		v1.PUT("/config", middleware.APIKeyAuth(authCfg), handler.UpdateArenaConfig)
	}
}
