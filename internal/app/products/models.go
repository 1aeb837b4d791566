package products

import "time"

type CreateProductRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	UnitPrice       int64  `json:"unit_price"`
	StockQuantity   int    `json:"stock_quantity"`
	Category        string `json:"category"`
	Size            string `json:"size"`
	ShopDisplayable bool   `json:"shop_displayable"`
}

// UpdateProductRequest carries partial updates; nil fields stay untouched.
type UpdateProductRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	UnitPrice       *int64  `json:"unit_price"`
	StockQuantity   *int    `json:"stock_quantity"`
	Category        *string `json:"category"`
	Size            *string `json:"size"`
	ShopDisplayable *bool   `json:"shop_displayable"`
}

type SearchFilter struct {
	Keyword  string
	Category string
	Size     string
}

type ProductResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	UnitPrice       int64     `json:"unit_price"`
	StockQuantity   int       `json:"stock_quantity"`
	Category        string    `json:"category"`
	Size            string    `json:"size"`
	ShopDisplayable bool      `json:"shop_displayable"`
	CreatedAt       time.Time `json:"created_at"`
}

type ProductPage struct {
	Products []*ProductResponse `json:"products"`
	Page     int                `json:"page"`
	Size     int                `json:"size"`
	Total    int64              `json:"total"`
	Last     bool               `json:"last"`
}
