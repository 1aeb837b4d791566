package domain

import "time"

// Payment is one row per confirmed external payment, keyed by the gateway's
// payment id. It references an order but is not owned by it: order deletion
// leaves the payment row as an audit record.
type Payment struct {
	PaymentID         string
	TransactionID     string
	MerchantID        string
	OrderID           int64
	PaymentMethodType string
	Provider          string
	PaidAt            time.Time
}
