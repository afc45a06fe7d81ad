package handlers

import (
	"net/http"

	"rinawarp_backend/internal/models"
	"rinawarp_backend/internal/services"
	"rinawarp_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// RegisterRoutes регистрирует профиль и админ-операции.
// authMW / adminMW собираются в routes, хэндлер их только применяет.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	rg.GET("/me", authMW, h.Me)

	admin := rg.Group("/admin")
	admin.Use(authMW)
	admin.Use(adminMW)
	{
		admin.GET("/users", h.AdminListUsers)
		admin.POST("/users", h.AdminCreateUser)
		admin.POST("/upgrade-user", h.AdminUpgradeUser)
	}
}

// Me - GET /api/v1/me.
// Профиль читается из БД, а не из claims: если аккаунт удален,
// живой токен все равно получает 404.
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	profile, err := h.userService.GetProfile(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// AdminListUsers - GET /api/v1/admin/users?page=&page_size=
func (h *UserHandler) AdminListUsers(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	offset := (page - 1) * pageSize

	db := h.GetDB(c)

	response, err := h.userService.ListUsers(db, pageSize, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// AdminCreateUser - POST /api/v1/admin/users
func (h *UserHandler) AdminCreateUser(c *gin.Context) {
	var req dto.AdminCreateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	profile, err := h.userService.AdminCreateUser(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// AdminUpgradeUser - POST /api/v1/admin/upgrade-user.
// Неизвестный план отклоняется с 400 до какой-либо записи.
func (h *UserHandler) AdminUpgradeUser(c *gin.Context) {
	var req dto.UpgradeUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.userService.SetPlan(db, req.UserID, models.Plan(req.Plan)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpgradeUserResponse{
		Success: true,
		Message: "User plan updated to " + req.Plan,
	})
}
