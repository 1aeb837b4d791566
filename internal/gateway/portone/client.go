package portone

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ecommerce/internal/domain"
)

// PaymentMethod is the payment instrument reported by PortOne.
type PaymentMethod struct {
	Type     string `json:"type"`
	Provider string `json:"provider"`
}

// PaymentProduct is one line of the merchandise the customer paid for, as the
// gateway recorded it. Server-known prices stay authoritative; these lines are
// parsed but not trusted for reconciliation.
type PaymentProduct struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Amount   int64  `json:"amount"`
	Quantity int    `json:"quantity"`
}

// PaymentResponse is PortOne's view of a settled payment. It is treated as
// ground truth for "was this payment actually made".
type PaymentResponse struct {
	ID            string           `json:"id"`
	Status        string           `json:"status"`
	TransactionID string           `json:"transactionId"`
	MerchantID    string           `json:"merchantId"`
	Method        PaymentMethod    `json:"method"`
	PaidAt        time.Time        `json:"paidAt"`
	Products      []PaymentProduct `json:"products"`
}

// ToPayment converts the gateway response into the payment row persisted with
// the order.
func (r *PaymentResponse) ToPayment(orderID int64) *domain.Payment {
	return &domain.Payment{
		PaymentID:         r.ID,
		TransactionID:     r.TransactionID,
		MerchantID:        r.MerchantID,
		OrderID:           orderID,
		PaymentMethodType: r.Method.Type,
		Provider:          r.Method.Provider,
		PaidAt:            r.PaidAt,
	}
}

type Gateway interface {
	GetPayment(ctx context.Context, paymentID string) (*PaymentResponse, error)
}

type Client struct {
	baseURL    string
	apiSecret  string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, apiSecret string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiSecret:  apiSecret,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// GetPayment resolves a payment reference against PortOne. A definitive
// rejection (404) maps to domain.ErrPaymentNotFound; transport failures,
// timeouts and every other non-2xx answer map to
// domain.ErrPaymentGatewayUnavailable so callers know a retry is safe.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*PaymentResponse, error) {
	url := fmt.Sprintf("%s/payments/%s", c.baseURL, paymentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build payment request: %w", err)
	}
	req.Header.Set("Authorization", "PortOne "+c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Payment gateway request failed",
			zap.String("payment_id", paymentID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.logger.Info("Payment gateway does not know this payment",
			zap.String("payment_id", paymentID))
		return nil, domain.ErrPaymentNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Warn("Payment gateway returned unexpected status",
			zap.String("payment_id", paymentID),
			zap.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", domain.ErrPaymentGatewayUnavailable, resp.StatusCode)
	}

	payment := &PaymentResponse{}
	if err := json.NewDecoder(resp.Body).Decode(payment); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}

	c.logger.Debug("Payment resolved at gateway",
		zap.String("payment_id", payment.ID),
		zap.String("status", payment.Status),
		zap.String("transaction_id", payment.TransactionID))
	return payment, nil
}
