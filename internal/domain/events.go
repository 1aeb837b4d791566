package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"ecommerce/internal/util"
)

const OrderPlacedTopic = "order.placed"

type OrderPlacedItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"`
}

type OrderPlacedEvent struct {
	OrderID    int64             `json:"order_id"`
	UserID     int64             `json:"user_id"`
	TotalPrice int64             `json:"total_price"`
	PaymentID  string            `json:"payment_id"`
	Items      []OrderPlacedItem `json:"items"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// NewOrderPlacedMessage builds the outbox row for a committed order. The order
// must already carry its persisted id.
func NewOrderPlacedMessage(order *Order, paymentID string) (*OutboxMessage, error) {
	event := OrderPlacedEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		PaymentID:  paymentID,
		OccurredAt: time.Now(),
	}
	for _, item := range order.Items {
		event.Items = append(event.Items, OrderPlacedItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order placed event: %w", err)
	}

	id, err := util.GenerateUUID()
	if err != nil {
		return nil, err
	}

	return &OutboxMessage{
		ID:        id,
		Topic:     OrderPlacedTopic,
		Key:       strconv.FormatInt(order.ID, 10),
		Payload:   payload,
		Status:    OutboxStatusPending,
		CreatedAt: time.Now(),
	}, nil
}
