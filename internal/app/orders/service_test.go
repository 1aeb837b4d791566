package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ecommerce/internal/cache"
	"ecommerce/internal/domain"
	"ecommerce/internal/gateway/portone"
)

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

type fakeProductReader struct {
	products map[int64]*domain.Product
	calls    []int64
}

func (f *fakeProductReader) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	f.calls = append(f.calls, id)
	if product, ok := f.products[id]; ok {
		return product, nil
	}
	return nil, domain.ErrProductNotFound
}

type fakePaymentRepo struct {
	byOrderID map[int64]*domain.Payment
}

func (f *fakePaymentRepo) CreateTx(ctx context.Context, q domain.Querier, payment *domain.Payment) error {
	return errors.New("not implemented")
}

func (f *fakePaymentRepo) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return nil, domain.ErrPaymentNotFound
}

func (f *fakePaymentRepo) GetByOrderID(ctx context.Context, orderID int64) (*domain.Payment, error) {
	if payment, ok := f.byOrderID[orderID]; ok {
		return payment, nil
	}
	return nil, domain.ErrPaymentNotFound
}

type fakeGateway struct {
	payment *portone.PaymentResponse
	err     error
	calls   int
}

func (f *fakeGateway) GetPayment(ctx context.Context, paymentID string) (*portone.PaymentResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payment, nil
}

type fakeProductCache struct {
	invalidated []int64
}

func (f *fakeProductCache) Get(ctx context.Context, productID int64) (*domain.Product, error) {
	return nil, cache.ErrCacheMiss
}

func (f *fakeProductCache) Set(ctx context.Context, product *domain.Product) error {
	return nil
}

func (f *fakeProductCache) Invalidate(ctx context.Context, productIDs ...int64) error {
	f.invalidated = append(f.invalidated, productIDs...)
	return nil
}

type fakeOrderRepo struct {
	nextID    int64
	commitErr error
	committed *domain.Order
	payment   *domain.Payment

	orders  map[int64]*domain.Order
	listed  []*domain.Order
	total   int64
	deleted []int64
}

func (f *fakeOrderRepo) CommitPlacedOrder(ctx context.Context, order *domain.Order, payment *domain.Payment) (int64, error) {
	if f.commitErr != nil {
		return 0, f.commitErr
	}
	f.committed = order
	f.payment = payment
	return f.nextID, nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if order, ok := f.orders[id]; ok {
		return order, nil
	}
	return nil, domain.ErrOrderNotFound
}

func (f *fakeOrderRepo) List(ctx context.Context, offset, limit int) ([]*domain.Order, int64, error) {
	return f.listed, f.total, nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type orderFixture struct {
	service   OrderService
	orderRepo *fakeOrderRepo
	users     *fakeUserRepo
	products  *fakeProductReader
	payments  *fakePaymentRepo
	gateway   *fakeGateway
	cache     *fakeProductCache
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orderRepo: &fakeOrderRepo{nextID: 42, orders: map[int64]*domain.Order{}},
		users: &fakeUserRepo{users: map[int64]*domain.User{
			1: {ID: 1, Name: "Jin", Email: "jin@example.com"},
		}},
		products: &fakeProductReader{products: map[int64]*domain.Product{
			1: {ID: 1, Name: "Denim Jacket", UnitPrice: 50000, StockQuantity: 10},
			2: {ID: 2, Name: "Canvas Tote", UnitPrice: 30000, StockQuantity: 5},
		}},
		payments: &fakePaymentRepo{byOrderID: map[int64]*domain.Payment{}},
		gateway: &fakeGateway{payment: &portone.PaymentResponse{
			ID:            "pay_abc",
			Status:        "PAID",
			TransactionID: "tx_1",
			MerchantID:    "merchant_1",
			Method:        portone.PaymentMethod{Type: "CARD", Provider: "KAKAOPAY"},
			PaidAt:        time.Now(),
		}},
		cache: &fakeProductCache{},
	}
	f.service = NewOrderService(f.orderRepo, f.users, f.products, f.payments, f.gateway, f.cache, zap.NewNop())
	return f
}

func placeRequest() *PlaceOrderRequest {
	return &PlaceOrderRequest{
		UserID:     1,
		TotalPrice: 130000,
		Products:   map[int64]int{1: 2, 2: 1},
	}
}

func TestPlaceOrderHappyPath(t *testing.T) {
	f := newOrderFixture()

	orderID, err := f.service.PlaceOrder(context.Background(), "pay_abc", placeRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(42), orderID)

	committed := f.orderRepo.committed
	require.NotNil(t, committed)
	assert.Equal(t, domain.OrderStatusPaid, committed.Status)
	assert.Equal(t, int64(130000), committed.TotalPrice)

	require.Len(t, committed.Items, 2)
	assert.Equal(t, int64(1), committed.Items[0].ProductID)
	assert.Equal(t, int64(100000), committed.Items[0].Price)
	assert.Equal(t, int64(2), committed.Items[1].ProductID)
	assert.Equal(t, int64(30000), committed.Items[1].Price)

	require.NotNil(t, f.orderRepo.payment)
	assert.Equal(t, "pay_abc", f.orderRepo.payment.PaymentID)
	assert.Equal(t, "KAKAOPAY", f.orderRepo.payment.Provider)

	assert.ElementsMatch(t, []int64{1, 2}, f.cache.invalidated)
}

func TestPlaceOrderTotalMismatch(t *testing.T) {
	f := newOrderFixture()
	req := placeRequest()
	req.TotalPrice = 120000

	_, err := f.service.PlaceOrder(context.Background(), "pay_abc", req)
	assert.ErrorIs(t, err, domain.ErrOrderTotalPriceMismatch)
	assert.Nil(t, f.orderRepo.committed, "a mismatched total must not reach the commit step")
	assert.Zero(t, f.gateway.calls, "a mismatched total must not reach the gateway")
}

func TestPlaceOrderUnknownUser(t *testing.T) {
	f := newOrderFixture()
	req := placeRequest()
	req.UserID = 99

	_, err := f.service.PlaceOrder(context.Background(), "pay_abc", req)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Nil(t, f.orderRepo.committed)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	f := newOrderFixture()
	req := placeRequest()
	req.Products[77] = 1

	_, err := f.service.PlaceOrder(context.Background(), "pay_abc", req)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Nil(t, f.orderRepo.committed)
	assert.Zero(t, f.gateway.calls)
}

func TestPlaceOrderPaymentNotFound(t *testing.T) {
	f := newOrderFixture()
	f.gateway.err = domain.ErrPaymentNotFound

	_, err := f.service.PlaceOrder(context.Background(), "pay_missing", placeRequest())
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
	assert.Nil(t, f.orderRepo.committed)
}

func TestPlaceOrderGatewayUnavailable(t *testing.T) {
	f := newOrderFixture()
	f.gateway.err = domain.ErrPaymentGatewayUnavailable

	_, err := f.service.PlaceOrder(context.Background(), "pay_abc", placeRequest())
	assert.ErrorIs(t, err, domain.ErrPaymentGatewayUnavailable)
	assert.Nil(t, f.orderRepo.committed)
}

func TestPlaceOrderOutOfStockRollsBack(t *testing.T) {
	f := newOrderFixture()
	f.orderRepo.commitErr = domain.ErrProductOutOfStock

	_, err := f.service.PlaceOrder(context.Background(), "pay_abc", placeRequest())
	assert.ErrorIs(t, err, domain.ErrProductOutOfStock)
	assert.Empty(t, f.cache.invalidated, "a rolled back order must not touch the cache")
}

func TestPlaceOrderRejectsInvalidRequests(t *testing.T) {
	f := newOrderFixture()

	_, err := f.service.PlaceOrder(context.Background(), "", placeRequest())
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = f.service.PlaceOrder(context.Background(), "pay_abc", &PlaceOrderRequest{UserID: 1, TotalPrice: 100})
	assert.ErrorIs(t, err, ErrInvalidOrder)

	req := placeRequest()
	req.Products[1] = 0
	req.TotalPrice = 30000
	_, err = f.service.PlaceOrder(context.Background(), "pay_abc", req)
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestGetOrderNotFound(t *testing.T) {
	f := newOrderFixture()

	_, err := f.service.GetOrder(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestListOrdersPagination(t *testing.T) {
	f := newOrderFixture()
	f.orderRepo.listed = []*domain.Order{
		{ID: 1, UserID: 1, TotalPrice: 130000, Status: domain.OrderStatusPaid},
	}
	f.orderRepo.total = 11

	page, err := f.service.ListOrders(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, int64(11), page.Total)
	assert.True(t, page.Last)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, "PAID", page.Orders[0].Status)
}

func TestListOrdersClampsPageParams(t *testing.T) {
	f := newOrderFixture()
	f.orderRepo.total = 5

	page, err := f.service.ListOrders(context.Background(), -3, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, DefaultPageSize, page.Size)

	page, err = f.service.ListOrders(context.Background(), 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, page.Size)
}

func TestDeleteOrder(t *testing.T) {
	f := newOrderFixture()
	f.orderRepo.orders[7] = &domain.Order{ID: 7, UserID: 1, TotalPrice: 1000, Status: domain.OrderStatusPaid}

	require.NoError(t, f.service.DeleteOrder(context.Background(), 7))
	assert.Equal(t, []int64{7}, f.orderRepo.deleted)

	err := f.service.DeleteOrder(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestGetOrderPayment(t *testing.T) {
	f := newOrderFixture()
	f.orderRepo.orders[7] = &domain.Order{ID: 7, UserID: 1, TotalPrice: 1000, Status: domain.OrderStatusPaid}
	f.payments.byOrderID[7] = &domain.Payment{
		PaymentID: "pay_abc",
		OrderID:   7,
		Provider:  "KAKAOPAY",
	}

	res, err := f.service.GetOrderPayment(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "pay_abc", res.PaymentID)
	assert.Equal(t, int64(7), res.OrderID)

	_, err = f.service.GetOrderPayment(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
