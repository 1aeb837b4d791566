package carts

type UpdateCartLineRequest struct {
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type RemoveCartLineRequest struct {
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
}

type CartLineResponse struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Subtotal  int64 `json:"subtotal"`
}

type CartResponse struct {
	UserID int64              `json:"user_id"`
	Lines  []CartLineResponse `json:"lines"`
	Total  int64              `json:"total"`
}
