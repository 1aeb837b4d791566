package orders

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"ecommerce/internal/cache"
	"ecommerce/internal/domain"
	"ecommerce/internal/gateway/portone"
	"ecommerce/internal/repository/order_repo"
	"ecommerce/internal/repository/payment_repo"
	"ecommerce/internal/repository/user_repo"
)

var ErrInvalidOrder = errors.New("invalid order data")

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ProductReader is the slice of the product repository the workflow needs for
// price reconciliation.
type ProductReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

type OrderService interface {
	PlaceOrder(ctx context.Context, paymentID string, req *PlaceOrderRequest) (int64, error)
	GetOrder(ctx context.Context, orderID int64) (*OrderResponse, error)
	ListOrders(ctx context.Context, page, size int) (*OrderPage, error)
	DeleteOrder(ctx context.Context, orderID int64) error
	GetOrderPayment(ctx context.Context, orderID int64) (*PaymentResponse, error)
}

type orderService struct {
	orderRepo    order_repo.OrderRepository
	userRepo     user_repo.UserRepository
	products     ProductReader
	payments     payment_repo.PaymentRepository
	gateway      portone.Gateway
	productCache cache.ProductCache
	logger       *zap.Logger
}

func NewOrderService(
	orderRepo order_repo.OrderRepository,
	userRepo user_repo.UserRepository,
	products ProductReader,
	payments payment_repo.PaymentRepository,
	gateway portone.Gateway,
	productCache cache.ProductCache,
	logger *zap.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		userRepo:     userRepo,
		products:     products,
		payments:     payments,
		gateway:      gateway,
		productCache: productCache,
		logger:       logger,
	}
}

// PlaceOrder validates the submitted cart against server-known prices,
// confirms the payment with the gateway, then commits the order, its items,
// the stock decrements and the payment row as one transaction. Nothing
// durable is written before the commit step, so every failure up to that
// point leaves no partial order behind.
func (s *orderService) PlaceOrder(ctx context.Context, paymentID string, req *PlaceOrderRequest) (int64, error) {
	if paymentID == "" || req.UserID <= 0 || req.TotalPrice <= 0 || len(req.Products) == 0 {
		return 0, ErrInvalidOrder
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Debug("Rejecting order for unknown user", zap.Int64("user_id", req.UserID))
			return 0, domain.ErrUserNotFound
		}
		s.logger.Error("Failed to resolve user for order", zap.Int64("user_id", req.UserID), zap.Error(err))
		return 0, errors.New("internal server error")
	}

	items, err := s.reconcilePrices(ctx, req)
	if err != nil {
		return 0, err
	}

	// Local validation passed; only now is the external gateway consulted.
	gatewayPayment, err := s.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) || errors.Is(err, domain.ErrPaymentGatewayUnavailable) {
			return 0, err
		}
		s.logger.Error("Unexpected gateway failure", zap.String("payment_id", paymentID), zap.Error(err))
		return 0, errors.New("internal server error")
	}

	order, err := domain.NewOrder(req.UserID, req.TotalPrice)
	if err != nil {
		return 0, ErrInvalidOrder
	}
	order.Items = items
	if err := order.MarkAsPaid(); err != nil {
		return 0, ErrInvalidOrder
	}

	orderID, err := s.orderRepo.CommitPlacedOrder(ctx, order, gatewayPayment.ToPayment(0))
	if err != nil {
		if errors.Is(err, domain.ErrProductOutOfStock) {
			s.logger.Info("Order rolled back: product out of stock",
				zap.Int64("user_id", req.UserID),
				zap.String("payment_id", paymentID))
			return 0, domain.ErrProductOutOfStock
		}
		s.logger.Error("Failed to commit order",
			zap.Int64("user_id", req.UserID),
			zap.String("payment_id", paymentID),
			zap.Error(err))
		return 0, errors.New("failed to commit order")
	}

	s.invalidateProducts(ctx, items)

	s.logger.Info("Order placed",
		zap.Int64("order_id", orderID),
		zap.Int64("user_id", req.UserID),
		zap.String("payment_id", paymentID),
		zap.Int64("total_price", req.TotalPrice))
	return orderID, nil
}

// reconcilePrices walks the submitted lines in product-id order, subtracting
// each server-known line total from the claimed total. Anything but an exact
// zero remainder rejects the order before any external call or write.
func (s *orderService) reconcilePrices(ctx context.Context, req *PlaceOrderRequest) ([]domain.OrderItem, error) {
	productIDs := make([]int64, 0, len(req.Products))
	for productID := range req.Products {
		productIDs = append(productIDs, productID)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	remaining := req.TotalPrice
	items := make([]domain.OrderItem, 0, len(productIDs))
	for _, productID := range productIDs {
		quantity := req.Products[productID]
		if quantity <= 0 {
			return nil, ErrInvalidOrder
		}

		product, err := s.products.GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				s.logger.Debug("Rejecting order with unknown product", zap.Int64("product_id", productID))
				return nil, domain.ErrProductNotFound
			}
			s.logger.Error("Failed to resolve product for order", zap.Int64("product_id", productID), zap.Error(err))
			return nil, errors.New("internal server error")
		}

		item, err := domain.NewOrderItem(product.ID, quantity, product.UnitPrice)
		if err != nil {
			return nil, ErrInvalidOrder
		}
		items = append(items, item)
		remaining -= item.Price
	}

	if remaining != 0 {
		s.logger.Info("Rejecting order with mismatched total",
			zap.Int64("user_id", req.UserID),
			zap.Int64("claimed_total", req.TotalPrice),
			zap.Int64("difference", remaining))
		return nil, domain.ErrOrderTotalPriceMismatch
	}
	return items, nil
}

func (s *orderService) invalidateProducts(ctx context.Context, items []domain.OrderItem) {
	productIDs := make([]int64, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}
	if err := s.productCache.Invalidate(ctx, productIDs...); err != nil {
		// Stale cache entries expire on their own; the order already stands.
		s.logger.Warn("Failed to invalidate product cache after order", zap.Error(err))
	}
}

func (s *orderService) GetOrder(ctx context.Context, orderID int64) (*OrderResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			s.logger.Debug("Order not found", zap.Int64("order_id", orderID))
			return nil, domain.ErrOrderNotFound
		}
		s.logger.Error("Failed to get order", zap.Int64("order_id", orderID), zap.Error(err))
		return nil, errors.New("internal server error")
	}
	return mapOrderToResponse(order), nil
}

func (s *orderService) ListOrders(ctx context.Context, page, size int) (*OrderPage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	orders, total, err := s.orderRepo.List(ctx, page*size, size)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, errors.New("internal server error")
	}

	responses := make([]*OrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = mapOrderToResponse(order)
	}
	return &OrderPage{
		Orders: responses,
		Page:   page,
		Size:   size,
		Total:  total,
		Last:   int64((page+1)*size) >= total,
	}, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, orderID int64) error {
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return domain.ErrOrderNotFound
		}
		s.logger.Error("Failed to delete order", zap.Int64("order_id", orderID), zap.Error(err))
		return errors.New("internal server error")
	}
	s.logger.Info("Order deleted", zap.Int64("order_id", orderID))
	return nil
}

func (s *orderService) GetOrderPayment(ctx context.Context, orderID int64) (*PaymentResponse, error) {
	if _, err := s.orderRepo.GetByID(ctx, orderID); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		s.logger.Error("Failed to resolve order for payment lookup", zap.Int64("order_id", orderID), zap.Error(err))
		return nil, errors.New("internal server error")
	}

	payment, err := s.payments.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		s.logger.Error("Failed to get payment for order", zap.Int64("order_id", orderID), zap.Error(err))
		return nil, errors.New("internal server error")
	}
	return &PaymentResponse{
		PaymentID:         payment.PaymentID,
		TransactionID:     payment.TransactionID,
		MerchantID:        payment.MerchantID,
		OrderID:           payment.OrderID,
		PaymentMethodType: payment.PaymentMethodType,
		Provider:          payment.Provider,
		PaidAt:            payment.PaidAt,
	}, nil
}

func mapOrderToResponse(order *domain.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}
	return &OrderResponse{
		ID:         order.ID,
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		Status:     string(order.Status),
		Items:      items,
		CreatedAt:  order.CreatedAt,
	}
}
