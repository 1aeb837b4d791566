package review_repo

import (
	"context"

	"ecommerce/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ExistsByUserAndProduct(ctx context.Context, userID, productID int64) (bool, error)
	ListByProduct(ctx context.Context, productID int64, offset, limit int) ([]*domain.Review, int64, error)
	AverageRating(ctx context.Context, productID int64) (float64, error)
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id int64) error
}
