package apperrors

import (
	"net/http"
)

/*
Этот файл содержит предопределенные переменные и фабрики
для ошибок бизнес-логики paywall-сервера.
*/

// --- Auth ---

// ErrInvalidCredentials - неверный email или пароль.
// Текст одинаковый для "email не найден" и "пароль не подошел",
// чтобы не раскрывать существование аккаунта.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrTokenExpired - срок действия токена истек.
var ErrTokenExpired = New(
	CodeTokenExpired,
	"auth",
	"Token has expired",
	http.StatusUnauthorized,
)

// ErrInvalidToken - подпись или структура токена не прошла проверку.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid token",
	http.StatusUnauthorized,
)

// ErrAdminRequired - операция доступна только плану admin.
var ErrAdminRequired = New(
	CodeForbidden,
	"auth",
	"Admin access required",
	http.StatusForbidden,
)

// ErrPlanAccessDenied - у аккаунта нет запрошенного плана.
func ErrPlanAccessDenied(plan string) *AppError {
	return New(
		CodeForbidden,
		"auth",
		"You don't have access to "+plan+" plan. Please upgrade.",
		http.StatusForbidden,
	)
}

// ErrFeatureRequiresUpgrade - фича закрыта для текущего плана.
func ErrFeatureRequiresUpgrade(message string) *AppError {
	return New(CodeForbidden, "entitlements", message, http.StatusForbidden)
}

// --- Users ---

// ErrUserNotFound - пользователь не найден (404 на /me и админ-операциях).
var ErrUserNotFound = New(
	CodeNotFound,
	"users",
	"User not found",
	http.StatusNotFound,
)

// ErrEmailAlreadyExists - email уже используется.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"users",
	"Email already in use",
	http.StatusConflict,
)

// --- Billing & Checkout ---

// ErrUnsupportedPlan - план отсутствует в таблице цен или в enum планов.
func ErrUnsupportedPlan(plan string) *AppError {
	return New(
		CodeUnsupportedPlan,
		"billing",
		"Unsupported plan: "+plan,
		http.StatusBadRequest,
	)
}

// ErrPaymentNotConfigured - Stripe-ключи не заданы на сервере.
var ErrPaymentNotConfigured = New(
	CodeServiceUnavailable,
	"billing",
	"Payment provider is not configured on the server",
	http.StatusServiceUnavailable,
)

// ErrPaymentProvider - провайдер вернул ошибку; сообщение пробрасывается.
func ErrPaymentProvider(err error, message string) *AppError {
	return Wrap(err, CodePaymentProviderError, "billing", message, http.StatusBadRequest)
}

// ErrCheckoutFailed - неожиданная ошибка при создании checkout-сессии.
func ErrCheckoutFailed(err error) *AppError {
	return Wrap(err, CodeCheckoutFailed, "billing", "Checkout failed", http.StatusInternalServerError)
}
