package portone

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ecommerce/internal/domain"
)

func TestGetPaymentParsesResponse(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/payments/pay_abc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "pay_abc",
			"status": "PAID",
			"transactionId": "tx_1",
			"merchantId": "merchant_1",
			"method": {"type": "CARD", "provider": "KAKAOPAY"},
			"paidAt": "2026-09-01T10:00:00Z",
			"products": [
				{"id": "prod-1", "name": "Denim Jacket", "amount": 50000, "quantity": 2}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token", 5*time.Second, zap.NewNop())

	payment, err := client.GetPayment(context.Background(), "pay_abc")
	require.NoError(t, err)
	assert.Equal(t, "PortOne secret-token", gotAuth)
	assert.Equal(t, "pay_abc", payment.ID)
	assert.Equal(t, "tx_1", payment.TransactionID)
	assert.Equal(t, "CARD", payment.Method.Type)
	assert.Equal(t, "KAKAOPAY", payment.Method.Provider)
	require.Len(t, payment.Products, 1)
	assert.Equal(t, "Denim Jacket", payment.Products[0].Name)
	assert.Equal(t, 2, payment.Products[0].Quantity)

	row := payment.ToPayment(7)
	assert.Equal(t, int64(7), row.OrderID)
	assert.Equal(t, "pay_abc", row.PaymentID)
	assert.Equal(t, "KAKAOPAY", row.Provider)
}

func TestGetPaymentNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such payment", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token", 5*time.Second, zap.NewNop())

	_, err := client.GetPayment(context.Background(), "pay_missing")
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
}

func TestGetPaymentServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token", 5*time.Second, zap.NewNop())

	_, err := client.GetPayment(context.Background(), "pay_abc")
	assert.ErrorIs(t, err, domain.ErrPaymentGatewayUnavailable)
}

func TestGetPaymentTimeoutIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token", 20*time.Millisecond, zap.NewNop())

	_, err := client.GetPayment(context.Background(), "pay_abc")
	assert.ErrorIs(t, err, domain.ErrPaymentGatewayUnavailable)
}

func TestGetPaymentConnectionRefusedIsUnavailable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "secret-token", time.Second, zap.NewNop())

	_, err := client.GetPayment(context.Background(), "pay_abc")
	assert.ErrorIs(t, err, domain.ErrPaymentGatewayUnavailable)
}
