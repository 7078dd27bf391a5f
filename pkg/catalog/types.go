// Package catalog holds the in-memory product catalog and its view derivation.
package catalog

import "github.com/marshallshelly/storekiosk/pkg/money"

// Product is a catalog entry as served by the backend. Products are immutable
// on the kiosk side; refreshes replace the whole list.
type Product struct {
	ID          int64          `json:"product_id"`
	Name        string         `json:"product_name"`
	Type        string         `json:"product_type"`
	Brand       string         `json:"product_brand"`
	Color       string         `json:"product_color"`
	Size        string         `json:"product_size"`
	Price       money.Centavos `json:"product_price"`
	Quantity    int            `json:"product_quantity"`
	Image       string         `json:"product_image"`
	SubCategory int64          `json:"sub_category"`
}

// InStock reports whether the product has any available quantity.
func (p Product) InStock() bool {
	return p.Quantity > 0
}

// MainCategory is a top-level catalog grouping.
type MainCategory struct {
	ID           int64  `json:"main_category_id"`
	Name         string `json:"main_category_name"`
	ProductCount int    `json:"product_count"`
}

// SubCategory belongs to exactly one MainCategory.
type SubCategory struct {
	ID           int64  `json:"sub_category_id"`
	Name         string `json:"sub_category_name"`
	MainCategory int64  `json:"main_category"`
	ProductCount int    `json:"product_count"`
}
