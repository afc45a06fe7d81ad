package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Version прошивается при сборке через -ldflags
var Version = "dev"

type HealthHandler struct {
	sqlDB     *sql.DB
	startedAt time.Time
}

func NewHealthHandler(sqlDB *sql.DB) *HealthHandler {
	return &HealthHandler{
		sqlDB:     sqlDB,
		startedAt: time.Now(),
	}
}

// RegisterRoutes регистрирует /version внутри /api/v1.
// /health живет в корне и регистрируется в routes отдельно.
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/version", h.VersionInfo)
}

// Health - GET /health.
// Отдает 200 и состояние БД; сам эндпоинт не падает при мертвой БД,
// чтобы балансировщик отличал "процесс жив" от "БД недоступна".
func (h *HealthHandler) Health(c *gin.Context) {
	dbStatus := "ok"
	if h.sqlDB == nil {
		dbStatus = "not configured"
	} else if err := h.sqlDB.Ping(); err != nil {
		dbStatus = "unreachable"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": dbStatus,
		"uptime":   time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// VersionInfo - GET /api/v1/version
func (h *HealthHandler) VersionInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "rinawarp-backend",
		"version": Version,
	})
}
