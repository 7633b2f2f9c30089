package ports

import (
	"context"

	"github.com/clickshop/shop-system/internal/core/domain"
)

// ProductRepository defines persistence operations for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// FindByNames returns all products whose name is an exact member of
	// names, ordered by name.
	FindByNames(ctx context.Context, names []string) ([]*domain.Product, error)
	// List returns up to limit products ordered by name, starting strictly
	// after the cursor name (empty cursor = from the beginning), plus the
	// cursor for the next page ("" when the page was not full).
	List(ctx context.Context, cursor string, limit int64) ([]*domain.Product, string, error)
	// IncrementStock atomically applies a signed delta to the stock field.
	IncrementStock(ctx context.Context, id string, delta int64) error
}
