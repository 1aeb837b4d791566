package domain

import (
	"errors"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusPaid    OrderStatus = "PAID"
	// OrderStatusFailed is part of the persisted enum surface; no transition
	// currently produces it.
	OrderStatusFailed OrderStatus = "FAILED"
)

// Order is created in memory as PENDING and only ever persisted after the
// transition to PAID.
type Order struct {
	ID         int64
	UserID     int64
	TotalPrice int64
	Status     OrderStatus
	Items      []OrderItem
	CreatedAt  time.Time
}

// OrderItem snapshots quantity and price at order time; it is never updated
// after the order commit.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	Price     int64
}

func NewOrder(userID, totalPrice int64) (*Order, error) {
	if userID <= 0 || totalPrice <= 0 {
		return nil, errors.New("invalid order data")
	}
	return &Order{
		UserID:     userID,
		TotalPrice: totalPrice,
		Status:     OrderStatusPending,
		CreatedAt:  time.Now(),
	}, nil
}

func (o *Order) MarkAsPaid() error {
	if o.Status != OrderStatusPending {
		return errors.New("order must be PENDING to become PAID")
	}
	o.Status = OrderStatusPaid
	return nil
}

func NewOrderItem(productID int64, quantity int, unitPrice int64) (OrderItem, error) {
	if productID <= 0 || quantity <= 0 || unitPrice <= 0 {
		return OrderItem{}, errors.New("invalid order item data")
	}
	return OrderItem{
		ProductID: productID,
		Quantity:  quantity,
		Price:     int64(quantity) * unitPrice,
	}, nil
}
