package carts

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"ecommerce/internal/domain"
	"ecommerce/internal/repository/cart_repo"
	"ecommerce/internal/repository/product_repo"
	"ecommerce/internal/repository/user_repo"
)

var ErrInvalidCartLine = errors.New("invalid cart line data")

type CartService interface {
	UpdateLineQuantity(ctx context.Context, req *UpdateCartLineRequest) error
	RemoveLine(ctx context.Context, req *RemoveCartLineRequest) error
	GetCart(ctx context.Context, userID int64) (*CartResponse, error)
}

type cartService struct {
	userRepo    user_repo.UserRepository
	productRepo product_repo.ProductRepository
	cartRepo    cart_repo.CartRepository
	logger      *zap.Logger
}

func NewCartService(
	userRepo user_repo.UserRepository,
	productRepo product_repo.ProductRepository,
	cartRepo cart_repo.CartRepository,
	logger *zap.Logger,
) CartService {
	return &cartService{
		userRepo:    userRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		logger:      logger,
	}
}

// UpdateLineQuantity sets the line's quantity to the requested value outright;
// repeated calls never accumulate. A quantity at or below zero deletes the
// line instead. Stock is checked against current inventory but not
// decremented here; decrementing happens only at order commit.
func (s *cartService) UpdateLineQuantity(ctx context.Context, req *UpdateCartLineRequest) error {
	if req.UserID <= 0 || req.ProductID <= 0 {
		return ErrInvalidCartLine
	}
	if req.Quantity <= 0 {
		return s.RemoveLine(ctx, &RemoveCartLineRequest{UserID: req.UserID, ProductID: req.ProductID})
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return s.mapProductErr(err, req.ProductID)
	}
	if !product.HasStockFor(req.Quantity) {
		s.logger.Debug("Rejecting cart update: not enough stock",
			zap.Int64("product_id", req.ProductID),
			zap.Int("requested", req.Quantity),
			zap.Int("in_stock", product.StockQuantity))
		return domain.ErrProductOutOfStock
	}

	cart, err := s.findOrCreateCart(ctx, req.UserID)
	if err != nil {
		return err
	}

	cart.SetLineQuantity(product.ID, req.Quantity, product.UnitPrice)

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.Int64("user_id", req.UserID), zap.Error(err))
		return errors.New("failed to save cart")
	}
	s.logger.Info("Cart line updated",
		zap.Int64("user_id", req.UserID),
		zap.Int64("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity))
	return nil
}

// RemoveLine drops the product's line from the cart. Removing a line that is
// not there succeeds without an error.
func (s *cartService) RemoveLine(ctx context.Context, req *RemoveCartLineRequest) error {
	if req.UserID <= 0 || req.ProductID <= 0 {
		return ErrInvalidCartLine
	}

	if _, err := s.productRepo.GetByID(ctx, req.ProductID); err != nil {
		return s.mapProductErr(err, req.ProductID)
	}

	cart, err := s.findOrCreateCart(ctx, req.UserID)
	if err != nil {
		return err
	}

	cart.RemoveLine(req.ProductID)

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.Int64("user_id", req.UserID), zap.Error(err))
		return errors.New("failed to save cart")
	}
	s.logger.Info("Cart line removed",
		zap.Int64("user_id", req.UserID),
		zap.Int64("product_id", req.ProductID))
	return nil
}

func (s *cartService) GetCart(ctx context.Context, userID int64) (*CartResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		s.logger.Error("Failed to resolve user for cart read", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.New("internal server error")
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			// No cart yet is an empty cart from the caller's point of view.
			return &CartResponse{UserID: userID, Lines: []CartLineResponse{}}, nil
		}
		s.logger.Error("Failed to get cart", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.New("internal server error")
	}
	return mapCartToResponse(cart), nil
}

func (s *cartService) findOrCreateCart(ctx context.Context, userID int64) (*domain.Cart, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		s.logger.Error("Failed to resolve user for cart write", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.New("internal server error")
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return domain.NewCart(userID), nil
		}
		s.logger.Error("Failed to get cart", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.New("internal server error")
	}
	return cart, nil
}

func (s *cartService) mapProductErr(err error, productID int64) error {
	if errors.Is(err, domain.ErrProductNotFound) {
		s.logger.Debug("Cart operation on unknown product", zap.Int64("product_id", productID))
		return domain.ErrProductNotFound
	}
	s.logger.Error("Failed to resolve product for cart operation", zap.Int64("product_id", productID), zap.Error(err))
	return errors.New("internal server error")
}

func mapCartToResponse(cart *domain.Cart) *CartResponse {
	lines := make([]CartLineResponse, len(cart.Lines))
	var total int64
	for i, line := range cart.Lines {
		lines[i] = CartLineResponse{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal,
		}
		total += line.Subtotal
	}
	return &CartResponse{
		UserID: cart.UserID,
		Lines:  lines,
		Total:  total,
	}
}
