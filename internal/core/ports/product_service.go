package ports

import (
	"context"

	"github.com/clickshop/shop-system/internal/core/domain"
)

// ListProductsInput carries pagination parameters for the catalog listing.
type ListProductsInput struct {
	Cursor string // name of the last product on the previous page
	Limit  int64  // capped by the service
}

// ListProductsResult is one page of the catalog.
type ListProductsResult struct {
	Items      []*domain.Product
	NextCursor string
}

// CreateProductInput carries the admin-facing fields of a new product.
type CreateProductInput struct {
	Name        string
	Stock       int64
	Price       string
	ImageURL    string
	Description string
}

// StockAdjustment is the authoritative state after a stock delta was applied.
type StockAdjustment struct {
	Product      *domain.Product
	Availability domain.Availability
}

// SearchResult holds the candidate names after augmentation together with
// the catalog products that matched any of them.
type SearchResult struct {
	Candidates []string
	Products   []*domain.Product
}

// ProductService defines catalog, stock and search-assist use cases.
type ProductService interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ListProductsResult, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, input CreateProductInput) (*domain.Product, error)
	// AdjustStock applies a signed delta. A negative delta whose magnitude
	// exceeds the current stock is rejected with domain.ErrInsufficientStock.
	AdjustStock(ctx context.Context, id string, delta int64) (*StockAdjustment, error)
	// Search resolves a free-text query into candidate names (external
	// suggestions plus deterministic case variants of the literal query) and
	// the products matching them. An empty query returns an empty result
	// without calling the external collaborator.
	Search(ctx context.Context, query string) (*SearchResult, error)
}
