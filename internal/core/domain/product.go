package domain

import "errors"

// Availability is the derived stock tier shown alongside a product.
type Availability string

const (
	AvailabilityInStock    Availability = "in_stock"
	AvailabilityLowStock   Availability = "low_stock"
	AvailabilityOutOfStock Availability = "out_of_stock"
)

// lowStockCeiling is the inclusive upper bound of the low-stock tier.
const lowStockCeiling = 10

var ErrProductNotFound = errors.New("product not found")
var ErrInsufficientStock = errors.New("insufficient stock")

// AvailabilityFor derives the availability tier from a stock count:
// 0 is out of stock, 1..10 is low stock, anything above is in stock.
func AvailabilityFor(stock int64) Availability {
	switch {
	case stock <= 0:
		return AvailabilityOutOfStock
	case stock <= lowStockCeiling:
		return AvailabilityLowStock
	default:
		return AvailabilityInStock
	}
}

// Product is a catalog entry. Price, ImageURL and Description are optional
// fields that external documents may omit; Stock is always present and
// non-negative.
type Product struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Name        string `json:"name" bson:"name"`
	Stock       int64  `json:"stock" bson:"stock"`
	Price       string `json:"price,omitempty" bson:"price,omitempty"`
	ImageURL    string `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Availability returns the derived tier for the product's current stock.
func (p *Product) Availability() Availability {
	return AvailabilityFor(p.Stock)
}
