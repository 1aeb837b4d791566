package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ecommerce/internal/domain"
	"ecommerce/internal/repository/payment_repo"
)

type pgPaymentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPaymentRepository(db *sql.DB, l *zap.Logger) payment_repo.PaymentRepository {
	return &pgPaymentRepository{db: db, logger: l}
}

func (r *pgPaymentRepository) CreateTx(ctx context.Context, q domain.Querier, payment *domain.Payment) error {
	query := `INSERT INTO payments (payment_id, transaction_id, merchant_id, order_id, payment_method_type, provider, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := q.ExecContext(ctx, query,
		payment.PaymentID, payment.TransactionID, payment.MerchantID, payment.OrderID,
		payment.PaymentMethodType, payment.Provider, payment.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment %s: %w", payment.PaymentID, err)
	}
	return nil
}

func (r *pgPaymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT payment_id, transaction_id, merchant_id, order_id, payment_method_type, provider, paid_at
		FROM payments WHERE payment_id = $1`
	return r.scanOne(ctx, query, paymentID)
}

func (r *pgPaymentRepository) GetByOrderID(ctx context.Context, orderID int64) (*domain.Payment, error) {
	query := `SELECT payment_id, transaction_id, merchant_id, order_id, payment_method_type, provider, paid_at
		FROM payments WHERE order_id = $1`
	return r.scanOne(ctx, query, orderID)
}

func (r *pgPaymentRepository) scanOne(ctx context.Context, query string, arg interface{}) (*domain.Payment, error) {
	payment := &domain.Payment{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&payment.PaymentID, &payment.TransactionID, &payment.MerchantID, &payment.OrderID,
		&payment.PaymentMethodType, &payment.Provider, &payment.PaidAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		r.logger.Error("Failed to get payment", zap.Any("arg", arg), zap.Error(err))
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}
