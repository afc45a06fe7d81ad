package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// StripeClient - минимальный клиент Stripe Checkout.
// Только один вызов: создание checkout-сессии. BaseURL и http.Client
// подменяются в тестах на httptest-заглушку.
type StripeClient struct {
	SecretKey string
	BaseURL   string

	httpClient *http.Client
}

// ProviderError - ошибка, которую вернул сам Stripe (HTTP 4xx/5xx с телом)
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("stripe error (%d): %s", e.StatusCode, e.Message)
}

// CheckoutSession - то, что нам нужно из ответа Stripe
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutParams - параметры создания сессии
type CheckoutParams struct {
	PriceID       string
	Mode          string // "payment" или "subscription"
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
	Metadata      map[string]string
}

func NewStripeClient(secretKey, baseURL string) *StripeClient {
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &StripeClient{
		SecretKey: secretKey,
		BaseURL:   strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			// Вызов блокирующий и сетевой: таймаут обязателен,
			// локальные блокировки во время вызова не держим
			Timeout: 15 * time.Second,
		},
	}
}

// Configured сообщает, задан ли секретный ключ
func (c *StripeClient) Configured() bool {
	return c.SecretKey != ""
}

// CreateCheckoutSession создает Stripe Checkout Session
// и возвращает id + redirect URL провайдера как есть.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	if !c.Configured() {
		return nil, errors.New("stripe secret key is not set")
	}

	form := url.Values{}
	form.Set("mode", params.Mode)
	form.Set("line_items[0][price]", params.PriceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", params.SuccessURL+"?session_id={CHECKOUT_SESSION_ID}")
	form.Set("cancel_url", params.CancelURL)
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}
	if params.CustomerEmail != "" {
		form.Set("customer_email", params.CustomerEmail)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Message:    parseStripeErrorMessage(body),
		}
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, err
	}
	if session.URL == "" {
		return nil, errors.New("stripe response missing redirect url")
	}

	return &session, nil
}

func parseStripeErrorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return string(body)
}
