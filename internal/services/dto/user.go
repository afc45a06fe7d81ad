package dto

import "rinawarp_backend/internal/models"

// UserProfileResponse - ответ GET /me и строка в админ-списке
type UserProfileResponse struct {
	ID                 string                    `json:"id"`
	Email              string                    `json:"email"`
	Plan               models.Plan               `json:"plan"`
	SubscriptionStatus models.SubscriptionStatus `json:"subscription_status"`
	CreatedAt          string                    `json:"created_at"`
}

// AdminUserListResponse - ответ GET /admin/users
type AdminUserListResponse struct {
	Users []UserProfileResponse `json:"users"`
	Total int64                 `json:"total"`
}

// AdminCreateUserRequest - тело POST /admin/users
type AdminCreateUserRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=6"`
	Plan     string `json:"plan" validate:"omitempty"`
}

// UpgradeUserRequest - тело POST /admin/upgrade-user
type UpgradeUserRequest struct {
	UserID string `json:"user_id" binding:"required" validate:"required"`
	Plan   string `json:"plan" binding:"required" validate:"required"`
}

// UpgradeUserResponse - подтверждение смены плана
type UpgradeUserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
