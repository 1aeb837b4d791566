package cart_repo

import (
	"context"

	"ecommerce/internal/domain"
)

type CartRepository interface {
	// GetByUserID returns domain.ErrCartNotFound when the user has no cart
	// yet; callers create one lazily.
	GetByUserID(ctx context.Context, userID int64) (*domain.Cart, error)
	// Save upserts the cart row and replaces its lines atomically.
	Save(ctx context.Context, cart *domain.Cart) error
}
