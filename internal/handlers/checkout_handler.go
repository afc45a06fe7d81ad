package handlers

import (
	"net/http"

	"rinawarp_backend/internal/services/billing"
	"rinawarp_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	*BaseHandler
	checkoutService billing.CheckoutService
}

func NewCheckoutHandler(base *BaseHandler, checkoutService billing.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		BaseHandler:     base,
		checkoutService: checkoutService,
	}
}

// RegisterRoutes регистрирует платежные маршруты.
// /checkout публичный: платить может и неавторизованный посетитель.
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout", h.CreateCheckout)
}

// CreateCheckout - POST /api/v1/checkout.
// Возвращает redirect URL провайдера; локальное состояние не меняется.
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.checkoutService.CreateCheckout(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
