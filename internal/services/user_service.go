package services

import (
	"time"

	"rinawarp_backend/internal/auth"
	"rinawarp_backend/internal/models"
	"rinawarp_backend/internal/repositories"
	"rinawarp_backend/internal/services/dto"
	"rinawarp_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(db *gorm.DB, userID string) (*dto.UserProfileResponse, error)
	ListUsers(db *gorm.DB, limit, offset int) (*dto.AdminUserListResponse, error)
	AdminCreateUser(db *gorm.DB, req *dto.AdminCreateUserRequest) (*dto.UserProfileResponse, error)
	SetPlan(db *gorm.DB, targetUserID string, newPlan models.Plan) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// GetProfile возвращает профиль владельца токена.
// Если пользователя уже удалили - 404, токен сам по себе не спасает.
func (s *UserServiceImpl) GetProfile(db *gorm.DB, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return toProfileResponse(user), nil
}

func (s *UserServiceImpl) ListUsers(db *gorm.DB, limit, offset int) (*dto.AdminUserListResponse, error) {
	users, err := s.userRepo.FindAll(db, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	total, err := s.userRepo.CountAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := &dto.AdminUserListResponse{
		Users: make([]dto.UserProfileResponse, 0, len(users)),
		Total: total,
	}
	for i := range users {
		out.Users = append(out.Users, *toProfileResponse(&users[i]))
	}
	return out, nil
}

// AdminCreateUser создает пользователя напрямую, без регистрации.
// План проверяется по enum так же, как в SetPlan.
func (s *UserServiceImpl) AdminCreateUser(db *gorm.DB, req *dto.AdminCreateUserRequest) (*dto.UserProfileResponse, error) {
	plan := models.Plan(req.Plan)
	if plan == "" {
		plan = models.PlanCommunity
	}
	if !models.IsKnownPlan(plan) {
		return nil, apperrors.ErrUnsupportedPlan(req.Plan)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:              NormalizeEmail(req.Email),
		PasswordHash:       hash,
		Plan:               plan,
		SubscriptionStatus: models.SubscriptionStatusActive,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return toProfileResponse(user), nil
}

// SetPlan - прямое административное переназначение плана.
// Неизвестный план отклоняется до записи; для известных планов
// перезапись безусловная, включая планы без карты фич (admin).
func (s *UserServiceImpl) SetPlan(db *gorm.DB, targetUserID string, newPlan models.Plan) error {
	if !models.IsKnownPlan(newPlan) {
		return apperrors.ErrUnsupportedPlan(string(newPlan))
	}

	if err := s.userRepo.UpdatePlan(db, targetUserID, newPlan); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func toProfileResponse(user *models.User) *dto.UserProfileResponse {
	return &dto.UserProfileResponse{
		ID:                 user.ID,
		Email:              user.Email,
		Plan:               user.Plan,
		SubscriptionStatus: user.SubscriptionStatus,
		CreatedAt:          user.CreatedAt.Format(time.RFC3339),
	}
}
