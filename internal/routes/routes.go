package routes

import (
	"rinawarp_backend/internal/auth"
	"rinawarp_backend/internal/entitlements"
	"rinawarp_backend/internal/handlers"
	"rinawarp_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты.
// Middleware собираются здесь один раз и раздаются хэндлерам.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	tokenService *auth.TokenService,
	resolver *entitlements.Resolver,
) {
	authMW := middleware.AuthMiddleware(tokenService)
	adminMW := middleware.AdminMiddleware(resolver)
	aiMW := middleware.RequireCapability(
		resolver,
		entitlements.CapabilityAISuggestions,
		"AI suggestions require Pioneer or monthly subscription",
	)
	analyticsMW := middleware.RequireCapability(
		resolver,
		entitlements.CapabilityAdvancedAnalytics,
		"Advanced analytics require Pioneer or monthly subscription",
	)

	// /health в корне, вне версионированного API
	ginRouter.GET("/health", appHandlers.HealthHandler.Health)

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.HealthHandler.RegisterRoutes(api)
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api, authMW, adminMW)
		appHandlers.LicenseHandler.RegisterRoutes(api, authMW, aiMW, analyticsMW)
		appHandlers.CheckoutHandler.RegisterRoutes(api)
	}
}
