package billing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripeClient_CreateCheckoutSession(t *testing.T) {
	var gotForm map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_key", r.Header.Get("Authorization"))

		assert.NoError(t, r.ParseForm())
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "cs_123", "url": "https://checkout.stripe.com/c/pay/cs_123"}`))
	}))
	defer server.Close()

	client := NewStripeClient("sk_test_key", server.URL)

	session, err := client.CreateCheckoutSession(context.Background(), CheckoutParams{
		PriceID:       "price_abc",
		Mode:          "payment",
		SuccessURL:    "https://example.com/success",
		CancelURL:     "https://example.com/cancel",
		CustomerEmail: "buyer@test.com",
		Metadata: map[string]string{
			"product": "rinawarp-terminal-pro",
			"plan":    "founder",
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "cs_123", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_123", session.URL)

	assert.Equal(t, "payment", gotForm["mode"])
	assert.Equal(t, "price_abc", gotForm["line_items[0][price]"])
	assert.Equal(t, "1", gotForm["line_items[0][quantity]"])
	// Плейсхолдер session_id добавляется к success_url как есть
	assert.Equal(t, "https://example.com/success?session_id={CHECKOUT_SESSION_ID}", gotForm["success_url"])
	assert.Equal(t, "https://example.com/cancel", gotForm["cancel_url"])
	assert.Equal(t, "buyer@test.com", gotForm["customer_email"])
	assert.Equal(t, "rinawarp-terminal-pro", gotForm["metadata[product]"])
	assert.Equal(t, "founder", gotForm["metadata[plan]"])
}

func TestStripeClient_NoCustomerEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		_, present := r.PostForm["customer_email"]
		assert.False(t, present, "пустой email не должен отправляться")

		w.Write([]byte(`{"id": "cs_123", "url": "https://checkout.stripe.com/c/pay/cs_123"}`))
	}))
	defer server.Close()

	client := NewStripeClient("sk_test_key", server.URL)
	_, err := client.CreateCheckoutSession(context.Background(), CheckoutParams{
		PriceID:    "price_abc",
		Mode:       "payment",
		SuccessURL: "https://example.com/success",
		CancelURL:  "https://example.com/cancel",
	})
	assert.NoError(t, err)
}

func TestStripeClient_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "No such price: 'price_abc'"}}`))
	}))
	defer server.Close()

	client := NewStripeClient("sk_test_key", server.URL)
	_, err := client.CreateCheckoutSession(context.Background(), CheckoutParams{
		PriceID:    "price_abc",
		Mode:       "payment",
		SuccessURL: "https://example.com/success",
		CancelURL:  "https://example.com/cancel",
	})

	var provErr *ProviderError
	assert.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusBadRequest, provErr.StatusCode)
	assert.Equal(t, "No such price: 'price_abc'", provErr.Message)
}

func TestStripeClient_MissingRedirectURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "cs_123"}`))
	}))
	defer server.Close()

	client := NewStripeClient("sk_test_key", server.URL)
	_, err := client.CreateCheckoutSession(context.Background(), CheckoutParams{
		PriceID:    "price_abc",
		Mode:       "payment",
		SuccessURL: "https://example.com/success",
		CancelURL:  "https://example.com/cancel",
	})
	assert.Error(t, err)
}

func TestStripeClient_NotConfigured(t *testing.T) {
	client := NewStripeClient("", "")
	assert.False(t, client.Configured())

	_, err := client.CreateCheckoutSession(context.Background(), CheckoutParams{})
	assert.Error(t, err)
}
