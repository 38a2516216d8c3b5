package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *StripeGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return NewStripeGateway("sk_test_123", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
}

func TestStripeGetSession(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/checkout/sessions/cs_test_1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "cs_test_1",
			"object": "checkout.session",
			"payment_status": "paid",
			"payment_intent": "pi_123",
			"amount_total": 10000,
			"currency": "bdt",
			"customer_email": "a@x.com",
			"metadata": {"issueId": "abc", "trackingId": "trk-1"}
		}`))
	})

	s, err := gw.GetSession(context.Background(), "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, s.PaymentStatus)
	assert.Equal(t, "pi_123", s.TransactionID)
	assert.Equal(t, int64(10000), s.AmountTotal)
	assert.Equal(t, "bdt", s.Currency)
	assert.Equal(t, "a@x.com", s.CustomerEmail)
	assert.Equal(t, "abc", s.Metadata["issueId"])
	assert.Equal(t, "trk-1", s.Metadata["trackingId"])
}

func TestStripeGetSessionUnknown(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"type": "invalid_request_error", "message": "No such checkout.session"}}`))
	})

	_, err := gw.GetSession(context.Background(), "cs_missing")
	assert.Error(t, err)
}

func TestStripeCreateSessionSendsLineItemAndMetadata(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "bdt", r.PostForm.Get("line_items[0][price_data][currency]"))
		assert.Equal(t, "10000", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "Pothole", r.PostForm.Get("line_items[0][price_data][product_data][name]"))
		assert.Equal(t, "abc", r.PostForm.Get("metadata[issueId]"))
		assert.Equal(t, "a@x.com", r.PostForm.Get("customer_email"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "cs_test_2", "object": "checkout.session", "url": "https://checkout.stripe.com/c/pay/cs_test_2"}`))
	})

	s, err := gw.CreateSession(context.Background(), SessionRequest{
		ProductName:   "Pothole",
		Amount:        10000,
		Currency:      "bdt",
		CustomerEmail: "a@x.com",
		Metadata:      map[string]string{"issueId": "abc"},
		SuccessURL:    "http://site/payment-success",
		CancelURL:     "http://site/payment-cancel",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_2", s.URL)
	assert.Equal(t, "cs_test_2", s.TransactionID)
}

func TestUnconfiguredGatewayFails(t *testing.T) {
	_, err := Unconfigured{}.GetSession(context.Background(), "cs")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
