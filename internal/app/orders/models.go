package orders

import "time"

// PlaceOrderRequest is the body of POST /orders/verify/{paymentID}. Products
// maps product id to requested quantity; TotalPrice is the client's claimed
// total in minor currency units, verified against server-known prices.
type PlaceOrderRequest struct {
	UserID     int64         `json:"user_id"`
	TotalPrice int64         `json:"total_price"`
	Products   map[int64]int `json:"products"`
}

type OrderItemResponse struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"`
}

type OrderResponse struct {
	ID         int64               `json:"id"`
	UserID     int64               `json:"user_id"`
	TotalPrice int64               `json:"total_price"`
	Status     string              `json:"status"`
	Items      []OrderItemResponse `json:"items"`
	CreatedAt  time.Time           `json:"created_at"`
}

type OrderPage struct {
	Orders []*OrderResponse `json:"orders"`
	Page   int              `json:"page"`
	Size   int              `json:"size"`
	Total  int64            `json:"total"`
	Last   bool             `json:"last"`
}

type PaymentResponse struct {
	PaymentID         string    `json:"payment_id"`
	TransactionID     string    `json:"transaction_id"`
	MerchantID        string    `json:"merchant_id"`
	OrderID           int64     `json:"order_id"`
	PaymentMethodType string    `json:"payment_method_type"`
	Provider          string    `json:"provider"`
	PaidAt            time.Time `json:"paid_at"`
}
