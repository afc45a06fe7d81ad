package services

import (
	"time"

	"rinawarp_backend/internal/auth"
	"rinawarp_backend/internal/entitlements"
	"rinawarp_backend/internal/logger"
	"rinawarp_backend/internal/models"
	"rinawarp_backend/internal/repositories"
	"rinawarp_backend/internal/services/dto"

	"gorm.io/gorm"
)

type LicenseService interface {
	License(claims *auth.Claims) *dto.LicenseResponse
	SeatCount(db *gorm.DB) *dto.SeatCountResponse
}

type LicenseServiceImpl struct {
	userRepo   repositories.UserRepository
	resolver   *entitlements.Resolver
	totalSeats int
}

func NewLicenseService(
	userRepo repositories.UserRepository,
	resolver *entitlements.Resolver,
	totalSeats int,
) LicenseService {
	return &LicenseServiceImpl{
		userRepo:   userRepo,
		resolver:   resolver,
		totalSeats: totalSeats,
	}
}

// License строит ответ /license из claims токена.
// План берется из токена (снимок на момент выдачи), БД не трогаем.
func (s *LicenseServiceImpl) License(claims *auth.Claims) *dto.LicenseResponse {
	resp := &dto.LicenseResponse{
		Valid:    true,
		Plan:     claims.Plan,
		Features: s.resolver.FeaturesFor(claims.Plan),
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Format(time.RFC3339)
	}
	return resp
}

// SeatCount - публичный счетчик мест founder-тарифа.
// Эндпоинт виден с маркетингового сайта, поэтому при падении БД
// не отдаем 5xx, а деградируем до used=0 с пометкой source=fallback.
func (s *LicenseServiceImpl) SeatCount(db *gorm.DB) *dto.SeatCountResponse {
	now := time.Now().UTC().Format(time.RFC3339)

	used, err := s.userRepo.CountActiveByPlan(db, models.PlanFounder)
	if err != nil {
		logger.Error("seat count query failed, serving fallback", "error", err)
		return &dto.SeatCountResponse{
			Total:     s.totalSeats,
			Used:      0,
			Remaining: s.totalSeats,
			Timestamp: now,
			Source:    "fallback",
			Error:     "Using fallback data",
		}
	}

	remaining := s.totalSeats - int(used)
	if remaining < 0 {
		remaining = 0
	}

	return &dto.SeatCountResponse{
		Total:     s.totalSeats,
		Used:      int(used),
		Remaining: remaining,
		Timestamp: now,
		Source:    "database",
	}
}
