package billing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"rinawarp_backend/internal/config"
	"rinawarp_backend/internal/models"
	"rinawarp_backend/internal/repositories"
	"rinawarp_backend/internal/services/dto"
	"rinawarp_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// fakePaymentRepo - заглушка журнала платежей для ApplyCompletedCheckout
type fakePaymentRepo struct {
	existing *models.PaymentEvent
	created  []*models.PaymentEvent
}

func (f *fakePaymentRepo) Create(db *gorm.DB, event *models.PaymentEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakePaymentRepo) FindByProviderSessionID(db *gorm.DB, sessionID string) (*models.PaymentEvent, error) {
	if f.existing != nil && f.existing.ProviderSessionID == sessionID {
		return f.existing, nil
	}
	return nil, repositories.ErrPaymentEventNotFound
}

func testConfig(baseURL, secretKey string) *config.Config {
	cfg := &config.Config{}
	cfg.Stripe.SecretKey = secretKey
	cfg.Stripe.BaseURL = baseURL
	cfg.Stripe.SuccessURL = "https://example.com/success"
	cfg.Stripe.CancelURL = "https://example.com/cancel"
	cfg.Stripe.PriceIDs = map[string]string{
		"founder":         "price_founder",
		"pioneer":         "price_pioneer",
		"monthly_creator": "price_creator",
		"monthly_pro":     "", // намеренно не настроен
	}
	return cfg
}

func newTestCheckoutService(cfg *config.Config) CheckoutService {
	stripe := NewStripeClient(cfg.Stripe.SecretKey, cfg.Stripe.BaseURL)
	return NewCheckoutService(stripe, nil, &fakePaymentRepo{}, cfg)
}

func TestCreateCheckout_Success(t *testing.T) {
	var gotMode, gotPlan string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		gotMode = r.PostForm.Get("mode")
		gotPlan = r.PostForm.Get("metadata[plan]")
		assert.Equal(t, "rinawarp-terminal-pro", r.PostForm.Get("metadata[product]"))

		w.Write([]byte(`{"id": "cs_1", "url": "https://checkout.stripe.com/c/pay/cs_1"}`))
	}))
	defer server.Close()

	svc := newTestCheckoutService(testConfig(server.URL, "sk_test"))

	resp, err := svc.CreateCheckout(context.Background(), &dto.CheckoutRequest{Plan: "founder"})
	assert.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_1", resp.URL)
	assert.Equal(t, "payment", gotMode, "лайфтайм-планы продаются как одноразовый платеж")
	assert.Equal(t, "founder", gotPlan)
}

func TestCreateCheckout_SubscriptionMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "subscription", r.PostForm.Get("mode"))
		w.Write([]byte(`{"id": "cs_1", "url": "https://checkout.stripe.com/c/pay/cs_1"}`))
	}))
	defer server.Close()

	svc := newTestCheckoutService(testConfig(server.URL, "sk_test"))

	_, err := svc.CreateCheckout(context.Background(), &dto.CheckoutRequest{Plan: "monthly_creator"})
	assert.NoError(t, err)
}

func TestCreateCheckout_UnsupportedPlanBeforeNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("провайдер не должен вызываться для непродаваемого плана")
	}))
	defer server.Close()

	svc := newTestCheckoutService(testConfig(server.URL, "sk_test"))

	for _, plan := range []string{"community", "admin", "gold", ""} {
		_, err := svc.CreateCheckout(context.Background(), &dto.CheckoutRequest{Plan: plan})

		var appErr *apperrors.AppError
		assert.ErrorAs(t, err, &appErr, "план %q", plan)
		assert.Equal(t, apperrors.CodeUnsupportedPlan, appErr.Code)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
	}
}

func TestCreateCheckout_NotConfigured(t *testing.T) {
	svc := newTestCheckoutService(testConfig("http://localhost:0", ""))

	_, err := svc.CreateCheckout(context.Background(), &dto.CheckoutRequest{Plan: "founder"})

	var appErr *apperrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPCode)
}

func TestCreateCheckout_MissingPriceID(t *testing.T) {
	svc := newTestCheckoutService(testConfig("http://localhost:0", "sk_test"))

	// monthly_pro продается, но price ID не задан
	_, err := svc.CreateCheckout(context.Background(), &dto.CheckoutRequest{Plan: "monthly_pro"})

	var appErr *apperrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPCode)
}

func TestCreateCheckout_ProviderErrorPassthrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "No such price: 'price_founder'"}}`))
	}))
	defer server.Close()

	svc := newTestCheckoutService(testConfig(server.URL, "sk_test"))

	_, err := svc.CreateCheckout(context.Background(), &dto.CheckoutRequest{Plan: "founder"})

	var appErr *apperrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodePaymentProviderError, appErr.Code)
	assert.Equal(t, "No such price: 'price_founder'", appErr.Message)
}

func TestApplyCompletedCheckout_UnknownPlan(t *testing.T) {
	svc := newTestCheckoutService(testConfig("http://localhost:0", "sk_test"))

	err := svc.ApplyCompletedCheckout(nil, &dto.ApplyCheckoutInput{
		ProviderSessionID: "cs_1",
		Email:             "buyer@test.com",
		Plan:              "gold",
	})

	var appErr *apperrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeUnsupportedPlan, appErr.Code)
}

func TestApplyCompletedCheckout_DuplicateIgnored(t *testing.T) {
	paymentRepo := &fakePaymentRepo{
		existing: &models.PaymentEvent{
			ProviderSessionID: "cs_dup",
			Plan:              models.PlanFounder,
		},
	}
	stripe := NewStripeClient("sk_test", "http://localhost:0")
	svc := NewCheckoutService(stripe, nil, paymentRepo, testConfig("http://localhost:0", "sk_test"))

	// Повторное событие по той же сессии - no-op, БД не трогается
	err := svc.ApplyCompletedCheckout(nil, &dto.ApplyCheckoutInput{
		ProviderSessionID: "cs_dup",
		Email:             "buyer@test.com",
		Plan:              "founder",
	})

	assert.NoError(t, err)
	assert.Empty(t, paymentRepo.created)
}
