package product_repo

import (
	"context"

	"ecommerce/internal/domain"
)

// ListFilter narrows product listings. Zero values mean "no filter".
type ListFilter struct {
	Keyword         string
	Category        domain.ProductCategory
	Size            domain.ProductSize
	ShopDisplayable *bool
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter ListFilter, offset, limit int) ([]*domain.Product, int64, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error

	// DecrementStockTx is the only stock mutation used during checkout. It is
	// a conditional update that refuses to take stock below zero; callers must
	// treat domain.ErrProductOutOfStock as fatal to the surrounding
	// transaction.
	DecrementStockTx(ctx context.Context, q domain.Querier, productID int64, quantity int) error
}
