package billing

import (
	"context"
	"strings"

	"rinawarp_backend/internal/config"
	"rinawarp_backend/internal/logger"
	"rinawarp_backend/internal/models"
	"rinawarp_backend/internal/repositories"
	"rinawarp_backend/internal/services/dto"
	"rinawarp_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const productTag = "rinawarp-terminal-pro"

// planMode - режим оплаты на каждый продаваемый план.
// План, которого здесь нет, не продается через checkout вообще.
var planMode = map[models.Plan]string{
	models.PlanFounder:        "payment",
	models.PlanPioneer:        "payment",
	models.PlanMonthlyCreator: "subscription",
	models.PlanMonthlyPro:     "subscription",
}

type CheckoutService interface {
	CreateCheckout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	ApplyCompletedCheckout(db *gorm.DB, input *dto.ApplyCheckoutInput) error
}

type CheckoutServiceImpl struct {
	stripe      *StripeClient
	userRepo    repositories.UserRepository
	paymentRepo repositories.PaymentEventRepository
	cfg         *config.Config
}

func NewCheckoutService(
	stripe *StripeClient,
	userRepo repositories.UserRepository,
	paymentRepo repositories.PaymentEventRepository,
	cfg *config.Config,
) CheckoutService {
	return &CheckoutServiceImpl{
		stripe:      stripe,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		cfg:         cfg,
	}
}

// CreateCheckout валидирует план по таблице цен и создает
// checkout-сессию у провайдера. Локальных side-эффектов нет:
// план меняется только после завершения оплаты.
func (s *CheckoutServiceImpl) CreateCheckout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	plan := models.Plan(req.Plan)

	// Проверка плана ДО любого сетевого вызова
	mode, ok := planMode[plan]
	if !ok {
		return nil, apperrors.ErrUnsupportedPlan(req.Plan)
	}

	priceID := s.cfg.Stripe.PriceIDs[string(plan)]
	if !s.stripe.Configured() || priceID == "" {
		return nil, apperrors.ErrPaymentNotConfigured
	}

	session, err := s.stripe.CreateCheckoutSession(ctx, CheckoutParams{
		PriceID:       priceID,
		Mode:          mode,
		SuccessURL:    s.cfg.Stripe.SuccessURL,
		CancelURL:     s.cfg.Stripe.CancelURL,
		CustomerEmail: req.Email,
		Metadata: map[string]string{
			"product": productTag,
			"plan":    string(plan),
		},
	})
	if err != nil {
		var provErr *ProviderError
		if apperrors.As(err, &provErr) {
			logger.Error("stripe rejected checkout session", "plan", plan, "status", provErr.StatusCode)
			return nil, apperrors.ErrPaymentProvider(err, provErr.Message)
		}
		logger.Error("checkout session creation failed", "plan", plan, "error", err)
		return nil, apperrors.ErrCheckoutFailed(err)
	}

	return &dto.CheckoutResponse{URL: session.URL}, nil
}

// ApplyCompletedCheckout - точка входа для внешнего коллаборатора
// "оплата завершена" (webhook/опрос - вне ядра). Идемпотентна по
// ProviderSessionID: повторное событие не меняет план второй раз.
func (s *CheckoutServiceImpl) ApplyCompletedCheckout(db *gorm.DB, input *dto.ApplyCheckoutInput) error {
	plan := models.Plan(input.Plan)
	if _, ok := planMode[plan]; !ok {
		return apperrors.ErrUnsupportedPlan(input.Plan)
	}

	if _, err := s.paymentRepo.FindByProviderSessionID(db, input.ProviderSessionID); err == nil {
		// Уже применяли
		logger.Warn("duplicate checkout completion ignored", "session_id", input.ProviderSessionID)
		return nil
	} else if !apperrors.Is(err, repositories.ErrPaymentEventNotFound) {
		return apperrors.InternalError(err)
	}

	// Email от провайдера приходит как его ввел покупатель
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdatePlanAndStatus(tx, user.ID, plan, models.SubscriptionStatusActive); err != nil {
			return apperrors.InternalError(err)
		}

		event := &models.PaymentEvent{
			UserID:            user.ID,
			ProviderSessionID: input.ProviderSessionID,
			Plan:              plan,
		}
		if len(input.RawPayload) > 0 {
			event.Payload = datatypes.JSON(input.RawPayload)
		}
		if err := s.paymentRepo.Create(tx, event); err != nil {
			return apperrors.InternalError(err)
		}

		logger.Info("checkout completion applied",
			"user_id", user.ID,
			"plan", plan,
			"session_id", input.ProviderSessionID,
		)
		return nil
	})
}
