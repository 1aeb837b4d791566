package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderPlacedMessage(t *testing.T) {
	order := &Order{
		ID:         42,
		UserID:     1,
		TotalPrice: 130000,
		Status:     OrderStatusPaid,
		Items: []OrderItem{
			{ProductID: 1, Quantity: 2, Price: 100000},
			{ProductID: 2, Quantity: 1, Price: 30000},
		},
	}

	msg, err := NewOrderPlacedMessage(order, "pay_abc")
	require.NoError(t, err)

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, OrderPlacedTopic, msg.Topic)
	assert.Equal(t, "42", msg.Key)
	assert.Equal(t, OutboxStatusPending, msg.Status)
	assert.Nil(t, msg.SentAt)

	var event OrderPlacedEvent
	require.NoError(t, json.Unmarshal(msg.Payload, &event))
	assert.Equal(t, int64(42), event.OrderID)
	assert.Equal(t, "pay_abc", event.PaymentID)
	assert.Equal(t, int64(130000), event.TotalPrice)
	require.Len(t, event.Items, 2)
	assert.Equal(t, int64(100000), event.Items[0].Price)
}
