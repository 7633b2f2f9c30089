package handler

import (
	"github.com/clickshop/shop-system/internal/core/domain"
)

type createProductRequest struct {
	Name        string `json:"name"        validate:"required"`
	Stock       int64  `json:"stock"       validate:"gte=0"`
	Price       string `json:"price"       validate:"required"`
	ImageURL    string `json:"image_url"   validate:"omitempty,url"`
	Description string `json:"description"`
}

// adjustStockRequest carries a signed stock delta. Zero is rejected in the
// handler; a `required` tag cannot tell 0 apart from an absent field.
type adjustStockRequest struct {
	Delta int64 `json:"delta"`
}

type searchRequest struct {
	Query string `json:"query"`
}

// productResponse is a catalog product together with its availability tier,
// which is derived from stock and never stored.
type productResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Stock        int64               `json:"stock"`
	Price        string              `json:"price"`
	ImageURL     string              `json:"image_url,omitempty"`
	Description  string              `json:"description,omitempty"`
	Availability domain.Availability `json:"availability"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:           p.ID,
		Name:         p.Name,
		Stock:        p.Stock,
		Price:        p.Price,
		ImageURL:     p.ImageURL,
		Description:  p.Description,
		Availability: p.Availability(),
	}
}

func toProductResponses(items []*domain.Product) []productResponse {
	out := make([]productResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toProductResponse(p))
	}
	return out
}

// productPageResponse is one page of the catalog. NextCursor is empty on the
// last page.
type productPageResponse struct {
	Items      []productResponse `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

type searchResponse struct {
	Candidates []string          `json:"candidates"`
	Products   []productResponse `json:"products"`
}
