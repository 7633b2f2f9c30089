package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/clickshop/shop-system/internal/core/domain"
	"github.com/clickshop/shop-system/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ProductService implements catalog browsing, stock adjustment and the
// search assist.
type ProductService struct {
	repo      ports.ProductRepository
	suggester ports.Suggester
	log       zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, suggester ports.Suggester, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, suggester: suggester, log: log}
}

func (s *ProductService) ListProducts(ctx context.Context, input ports.ListProductsInput) (*ports.ListProductsResult, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, next, err := s.repo.List(ctx, input.Cursor, limit)
	if err != nil {
		return nil, err
	}
	return &ports.ListProductsResult{Items: items, NextCursor: next}, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	created, err := s.repo.Create(ctx, &domain.Product{
		Name:        input.Name,
		Stock:       input.Stock,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Description: input.Description,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, input ports.CreateProductInput) (*domain.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.Stock = input.Stock
	existing.Price = input.Price
	existing.ImageURL = input.ImageURL
	existing.Description = input.Description

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// AdjustStock applies a signed delta to a product's stock. A removal larger
// than the current stock is rejected before touching the store. On success
// the document is re-read so the response carries the authoritative
// post-increment value, which may already include concurrent adjustments.
func (s *ProductService) AdjustStock(ctx context.Context, id string, delta int64) (*ports.StockAdjustment, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if delta < 0 && -delta > current.Stock {
		return nil, domain.ErrInsufficientStock
	}

	if err := s.repo.IncrementStock(ctx, id, delta); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("product_id", id).
		Int64("delta", delta).
		Int64("stock", updated.Stock).
		Msg("stock adjusted")
	return &ports.StockAdjustment{Product: updated, Availability: updated.Availability()}, nil
}

// Search turns a free-text query into candidate names and matching products.
// External suggestion failures degrade to an empty suggestion list; the
// literal query and its case variants always remain searchable.
func (s *ProductService) Search(ctx context.Context, query string) (*ports.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return &ports.SearchResult{Candidates: []string{}}, nil
	}

	suggestions, err := s.suggester.Suggest(ctx, query)
	if err != nil {
		s.log.Warn().Err(err).Str("query", query).Msg("suggestion call failed, using query variants only")
		suggestions = nil
	}

	candidates := augmentWithQueryVariants(suggestions, query)

	products, err := s.repo.FindByNames(ctx, candidates)
	if err != nil {
		return nil, err
	}
	return &ports.SearchResult{Candidates: candidates, Products: products}, nil
}

// augmentWithQueryVariants appends the literal query and its lowercase,
// uppercase and title-case forms to the suggestions, dropping blanks and
// deduplicating by exact string equality in first-seen order.
func augmentWithQueryVariants(suggestions []string, query string) []string {
	raw := make([]string, 0, len(suggestions)+4)
	raw = append(raw, suggestions...)
	raw = append(raw,
		query,
		strings.ToLower(query),
		strings.ToUpper(query),
		titleCase(query),
	)

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, name := range raw {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// titleCase lowercases the string and uppercases the first rune of every
// space-separated word.
func titleCase(s string) string {
	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
