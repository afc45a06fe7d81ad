package handlers

import (
	"net/http"
	"time"

	"rinawarp_backend/internal/middleware"
	"rinawarp_backend/internal/services"
	"rinawarp_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type LicenseHandler struct {
	*BaseHandler
	licenseService services.LicenseService
}

func NewLicenseHandler(base *BaseHandler, licenseService services.LicenseService) *LicenseHandler {
	return &LicenseHandler{
		BaseHandler:    base,
		licenseService: licenseService,
	}
}

// RegisterRoutes регистрирует лицензионные маршруты.
// /license-count публичный: его опрашивает маркетинговый сайт.
func (h *LicenseHandler) RegisterRoutes(rg *gin.RouterGroup, authMW, aiMW, analyticsMW gin.HandlerFunc) {
	rg.GET("/license", authMW, h.License)
	rg.GET("/license-count", h.SeatCount)

	rg.GET("/ai/suggestions", authMW, aiMW, h.AISuggestions)
	rg.GET("/analytics", authMW, analyticsMW, h.Analytics)
}

// License - GET /api/v1/license.
// Ответ строится целиком из claims токена, без похода в БД.
func (h *LicenseHandler) License(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return
	}

	c.JSON(http.StatusOK, h.licenseService.License(claims))
}

// SeatCount - GET /api/v1/license-count.
// Всегда 200: при недоступной БД сервис сам деградирует до fallback.
func (h *LicenseHandler) SeatCount(c *gin.Context) {
	db := h.GetDB(c)
	c.JSON(http.StatusOK, h.licenseService.SeatCount(db))
}

// AISuggestions - GET /api/v1/ai/suggestions (только платные планы)
func (h *LicenseHandler) AISuggestions(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return
	}

	// TODO: заменить статичный набор на вывод движка рекомендаций,
	// когда он переедет из скриптов в сервис.
	c.JSON(http.StatusOK, gin.H{
		"plan": claims.Plan,
		"suggestions": []gin.H{
			{
				"title":   "Run the automated fix pack",
				"command": "node .kilo/kilo-fix-pack.js",
			},
			{
				"title":   "Inspect recent API errors",
				"command": "pm2 logs rinawarp-api --lines 50",
			},
			{
				"title":   "Enable automated deployment checks",
				"command": "rinawarp deploy --check",
			},
		},
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	})
}

// Analytics - GET /api/v1/analytics (только платные планы)
func (h *LicenseHandler) Analytics(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plan": claims.Plan,
		"usage": gin.H{
			"period":          "30d",
			"sessions":        0,
			"deploys":         0,
			"fixes_applied":   0,
			"health_score":    100,
			"top_issue":       "",
			"last_activity":   "",
			"tracking_status": "pending",
		},
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	})
}
