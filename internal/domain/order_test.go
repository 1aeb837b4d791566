package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderStartsPending(t *testing.T) {
	order, err := NewOrder(1, 130000)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusPending, order.Status)
}

func TestNewOrderRejectsInvalidInput(t *testing.T) {
	_, err := NewOrder(0, 130000)
	assert.Error(t, err)

	_, err = NewOrder(1, 0)
	assert.Error(t, err)

	_, err = NewOrder(1, -5)
	assert.Error(t, err)
}

func TestMarkAsPaidOnlyFromPending(t *testing.T) {
	order, err := NewOrder(1, 130000)
	require.NoError(t, err)

	require.NoError(t, order.MarkAsPaid())
	assert.Equal(t, OrderStatusPaid, order.Status)

	assert.Error(t, order.MarkAsPaid(), "a PAID order must not transition again")
}

func TestNewOrderItemSnapshotsLineTotal(t *testing.T) {
	item, err := NewOrderItem(10, 2, 50000)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), item.Price)
	assert.Equal(t, 2, item.Quantity)
}

func TestNewOrderItemRejectsInvalidInput(t *testing.T) {
	_, err := NewOrderItem(0, 2, 50000)
	assert.Error(t, err)

	_, err = NewOrderItem(10, 0, 50000)
	assert.Error(t, err)

	_, err = NewOrderItem(10, 2, 0)
	assert.Error(t, err)
}

func TestProductHasStockFor(t *testing.T) {
	product := &Product{StockQuantity: 5}

	assert.True(t, product.HasStockFor(5), "stock is allowed to reach exactly zero")
	assert.True(t, product.HasStockFor(1))
	assert.False(t, product.HasStockFor(6))
	assert.False(t, product.HasStockFor(0))
	assert.False(t, product.HasStockFor(-1))
}
