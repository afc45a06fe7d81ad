package services

import (
	"rinawarp_backend/internal/services/billing"
)

// ServiceContainer собирает все сервисы для передачи в хэндлеры
type ServiceContainer struct {
	AuthService     AuthService
	UserService     UserService
	LicenseService  LicenseService
	CheckoutService billing.CheckoutService
}
