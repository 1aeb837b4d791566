package domain

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailAlreadyUsed = errors.New("email already in use")

	ErrProductNotFound   = errors.New("product not found")
	ErrProductOutOfStock = errors.New("product out of stock")

	ErrCartNotFound = errors.New("cart not found")

	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderTotalPriceMismatch = errors.New("order total price does not match server-side prices")

	// ErrPaymentNotFound means the gateway definitively rejected the payment
	// reference. ErrPaymentGatewayUnavailable means the gateway could not be
	// reached or answered with a server error; callers may retry.
	ErrPaymentNotFound           = errors.New("payment not found")
	ErrPaymentGatewayUnavailable = errors.New("payment gateway unavailable")

	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this user and product")
)
