package dto

// CheckoutRequest - тело POST /checkout.
// Email необязателен: анонимный посетитель прайсинга тоже может платить.
type CheckoutRequest struct {
	Plan  string `json:"plan" binding:"required" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

// CheckoutResponse - redirect URL, выданный провайдером
type CheckoutResponse struct {
	URL string `json:"url"`
}

// ApplyCheckoutInput - узкий интерфейс "оплата завершена".
// Транспорт (webhook, опрос) живет снаружи и не входит в ядро.
type ApplyCheckoutInput struct {
	ProviderSessionID string
	Email             string
	Plan              string
	RawPayload        []byte
}
