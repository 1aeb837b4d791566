package domain

import (
	"errors"
	"time"
)

type ProductCategory string

const (
	ProductCategoryTop       ProductCategory = "TOP"
	ProductCategoryBottom    ProductCategory = "BOTTOM"
	ProductCategoryOuterwear ProductCategory = "OUTERWEAR"
	ProductCategoryShoes     ProductCategory = "SHOES"
	ProductCategoryAccessory ProductCategory = "ACCESSORY"
)

type ProductSize string

const (
	ProductSizeSmall  ProductSize = "S"
	ProductSizeMedium ProductSize = "M"
	ProductSizeLarge  ProductSize = "L"
	ProductSizeFree   ProductSize = "FREE"
)

// Product is the authoritative record for unit price and remaining stock.
// Prices are integer minor-currency units. Stock never goes negative: the
// only mutation path during checkout is the repository's conditional
// decrement, which refuses to go below zero.
type Product struct {
	ID              int64
	Name            string
	Description     string
	UnitPrice       int64
	StockQuantity   int
	Category        ProductCategory
	Size            ProductSize
	ShopDisplayable bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewProduct(name, description string, unitPrice int64, stockQuantity int, category ProductCategory, size ProductSize, shopDisplayable bool) (*Product, error) {
	if name == "" {
		return nil, errors.New("product name is required")
	}
	if unitPrice <= 0 {
		return nil, errors.New("unit price must be positive")
	}
	if stockQuantity < 0 {
		return nil, errors.New("stock quantity must not be negative")
	}
	now := time.Now()
	return &Product{
		Name:            name,
		Description:     description,
		UnitPrice:       unitPrice,
		StockQuantity:   stockQuantity,
		Category:        category,
		Size:            size,
		ShopDisplayable: shopDisplayable,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// HasStockFor reports whether the requested quantity can be served. Stock is
// allowed to reach exactly zero.
func (p *Product) HasStockFor(quantity int) bool {
	return quantity > 0 && p.StockQuantity >= quantity
}
