package services

import (
	"strings"

	"rinawarp_backend/internal/auth"
	"rinawarp_backend/internal/models"
	"rinawarp_backend/internal/repositories"
	"rinawarp_backend/internal/services/dto"
	"rinawarp_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type AuthServiceImpl struct {
	userRepo     repositories.UserRepository
	sessionRepo  repositories.SessionRepository
	tokenService *auth.TokenService
}

func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	tokenService *auth.TokenService,
) AuthService {
	return &AuthServiceImpl{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		tokenService: tokenService,
	}
}

// Login - аутентификация пользователя.
// Неизвестный email и неверный пароль дают ОДНУ И ТУ ЖЕ ошибку,
// чтобы по ответу нельзя было проверить существование аккаунта.
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := NormalizeEmail(req.Email)

	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	// Запрошенный план должен совпадать с планом аккаунта.
	// community доступен всем.
	requestedPlan := models.Plan(req.Plan)
	if requestedPlan == "" {
		requestedPlan = models.PlanCommunity
	}
	if requestedPlan != models.PlanCommunity && user.Plan != requestedPlan {
		return nil, apperrors.ErrPlanAccessDenied(string(requestedPlan))
	}

	// План в токене - снимок на момент выдачи
	token, expiresAt, err := s.tokenService.Issue(user.ID, user.Email, user.Plan)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	session := &models.Session{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := s.sessionRepo.Create(db, session); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Success: true,
		Token:   token,
		UserID:  user.ID,
	}, nil
}

// NormalizeEmail приводит email к каноничному виду для уникального индекса
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
