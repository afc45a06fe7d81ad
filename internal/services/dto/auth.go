package dto

// LoginRequest - тело POST /auth/login.
// Plan - запрошенный план; пустое значение трактуется как community.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
	Plan     string `json:"plan" validate:"omitempty"`
}

// LoginResponse повторяет контракт, на который завязано расширение:
// {success, token, userId}.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	UserID  string `json:"userId"`
}
