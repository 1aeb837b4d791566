package payment_repo

import (
	"context"

	"ecommerce/internal/domain"
)

type PaymentRepository interface {
	// CreateTx runs on the caller's querier so the payment row lands in the
	// same transaction as the order it confirms.
	CreateTx(ctx context.Context, q domain.Querier, payment *domain.Payment) error
	GetByPaymentID(ctx context.Context, paymentID string) (*domain.Payment, error)
	GetByOrderID(ctx context.Context, orderID int64) (*domain.Payment, error)
}
