package products

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"ecommerce/internal/cache"
	"ecommerce/internal/domain"
	"ecommerce/internal/repository/product_repo"
)

var ErrInvalidProduct = errors.New("invalid product data")

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProductResponse, error)
	GetProduct(ctx context.Context, id int64) (*ProductResponse, error)
	ListProducts(ctx context.Context, filter SearchFilter, page, size int) (*ProductPage, error)
	UpdateProduct(ctx context.Context, id int64, req *UpdateProductRequest) (*ProductResponse, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productService struct {
	productRepo  product_repo.ProductRepository
	productCache cache.ProductCache
	logger       *zap.Logger
}

func NewProductService(productRepo product_repo.ProductRepository, productCache cache.ProductCache, logger *zap.Logger) ProductService {
	return &productService{
		productRepo:  productRepo,
		productCache: productCache,
		logger:       logger,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProductResponse, error) {
	product, err := domain.NewProduct(
		req.Name, req.Description, req.UnitPrice, req.StockQuantity,
		domain.ProductCategory(req.Category), domain.ProductSize(req.Size), req.ShopDisplayable,
	)
	if err != nil {
		s.logger.Debug("Rejecting invalid product", zap.Error(err))
		return nil, ErrInvalidProduct
	}

	id, err := s.productRepo.Create(ctx, product)
	if err != nil {
		s.logger.Error("Failed to create product", zap.String("name", req.Name), zap.Error(err))
		return nil, errors.New("failed to create product")
	}
	product.ID = id

	s.logger.Info("Product created", zap.Int64("product_id", id), zap.String("name", product.Name))
	return mapProductToResponse(product), nil
}

// GetProduct serves reads through the cache; a miss falls back to the
// database and backfills the entry.
func (s *productService) GetProduct(ctx context.Context, id int64) (*ProductResponse, error) {
	cached, err := s.productCache.Get(ctx, id)
	if err == nil {
		return mapProductToResponse(cached), nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		// Cache trouble must never fail a read; the database still answers.
		s.logger.Warn("Product cache read failed", zap.Int64("product_id", id), zap.Error(err))
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		s.logger.Error("Failed to get product", zap.Int64("product_id", id), zap.Error(err))
		return nil, errors.New("internal server error")
	}

	if err := s.productCache.Set(ctx, product); err != nil {
		s.logger.Warn("Failed to backfill product cache", zap.Int64("product_id", id), zap.Error(err))
	}
	return mapProductToResponse(product), nil
}

func (s *productService) ListProducts(ctx context.Context, filter SearchFilter, page, size int) (*ProductPage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	repoFilter := product_repo.ListFilter{
		Keyword:  filter.Keyword,
		Category: domain.ProductCategory(filter.Category),
		Size:     domain.ProductSize(filter.Size),
	}

	productsList, total, err := s.productRepo.List(ctx, repoFilter, page*size, size)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, errors.New("internal server error")
	}

	responses := make([]*ProductResponse, len(productsList))
	for i, product := range productsList {
		responses[i] = mapProductToResponse(product)
	}
	return &ProductPage{
		Products: responses,
		Page:     page,
		Size:     size,
		Total:    total,
		Last:     int64((page+1)*size) >= total,
	}, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, req *UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		s.logger.Error("Failed to get product for update", zap.Int64("product_id", id), zap.Error(err))
		return nil, errors.New("internal server error")
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice <= 0 {
			return nil, ErrInvalidProduct
		}
		product.UnitPrice = *req.UnitPrice
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, ErrInvalidProduct
		}
		product.StockQuantity = *req.StockQuantity
	}
	if req.Category != nil {
		product.Category = domain.ProductCategory(*req.Category)
	}
	if req.Size != nil {
		product.Size = domain.ProductSize(*req.Size)
	}
	if req.ShopDisplayable != nil {
		product.ShopDisplayable = *req.ShopDisplayable
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		s.logger.Error("Failed to update product", zap.Int64("product_id", id), zap.Error(err))
		return nil, errors.New("failed to update product")
	}

	if err := s.productCache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("Failed to invalidate product cache after update", zap.Int64("product_id", id), zap.Error(err))
	}

	s.logger.Info("Product updated", zap.Int64("product_id", id))
	return mapProductToResponse(product), nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return domain.ErrProductNotFound
		}
		s.logger.Error("Failed to delete product", zap.Int64("product_id", id), zap.Error(err))
		return errors.New("failed to delete product")
	}

	if err := s.productCache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("Failed to invalidate product cache after delete", zap.Int64("product_id", id), zap.Error(err))
	}

	s.logger.Info("Product deleted", zap.Int64("product_id", id))
	return nil
}

func mapProductToResponse(product *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:              product.ID,
		Name:            product.Name,
		Description:     product.Description,
		UnitPrice:       product.UnitPrice,
		StockQuantity:   product.StockQuantity,
		Category:        string(product.Category),
		Size:            string(product.Size),
		ShopDisplayable: product.ShopDisplayable,
		CreatedAt:       product.CreatedAt,
	}
}
