package dto

import "rinawarp_backend/internal/models"

// LicenseResponse - ответ GET /license
type LicenseResponse struct {
	Valid     bool        `json:"valid"`
	Plan      models.Plan `json:"plan"`
	Features  []string    `json:"features"`
	ExpiresAt string      `json:"expires_at,omitempty"`
}

// SeatCountResponse - ответ GET /license-count.
// Source показывает, откуда взято значение used:
// "database" при живой БД, "fallback" при деградации.
type SeatCountResponse struct {
	Total     int    `json:"total"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
	Error     string `json:"error,omitempty"`
}
