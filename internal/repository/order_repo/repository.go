package order_repo

import (
	"context"

	"ecommerce/internal/domain"
)

type OrderRepository interface {
	// CommitPlacedOrder persists a PAID order as one atomic unit: the order
	// row, the conditional stock decrement for every line, the bulk order-item
	// insert, the payment row and the order-placed outbox message. Any failure
	// rolls the whole unit back; domain.ErrProductOutOfStock reports a line
	// whose remaining stock could not cover its quantity.
	CommitPlacedOrder(ctx context.Context, order *domain.Order, payment *domain.Payment) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Order, int64, error)
	Delete(ctx context.Context, id int64) error
}
