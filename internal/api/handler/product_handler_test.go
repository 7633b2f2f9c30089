package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clickshop/shop-system/internal/core/domain"
	"github.com/clickshop/shop-system/internal/core/ports"
)

type stubProductService struct {
	listFn   func(ctx context.Context, input ports.ListProductsInput) (*ports.ListProductsResult, error)
	getFn    func(ctx context.Context, id string) (*domain.Product, error)
	createFn func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error)
	updateFn func(ctx context.Context, id string, input ports.CreateProductInput) (*domain.Product, error)
	adjustFn func(ctx context.Context, id string, delta int64) (*ports.StockAdjustment, error)
	searchFn func(ctx context.Context, query string) (*ports.SearchResult, error)
}

func (s *stubProductService) ListProducts(ctx context.Context, input ports.ListProductsInput) (*ports.ListProductsResult, error) {
	return s.listFn(ctx, input)
}

func (s *stubProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, input)
}

func (s *stubProductService) UpdateProduct(ctx context.Context, id string, input ports.CreateProductInput) (*domain.Product, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubProductService) AdjustStock(ctx context.Context, id string, delta int64) (*ports.StockAdjustment, error) {
	return s.adjustFn(ctx, id, delta)
}

func (s *stubProductService) Search(ctx context.Context, query string) (*ports.SearchResult, error) {
	return s.searchFn(ctx, query)
}

func TestProductHandler_List_ForwardsPagination(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		listFn: func(ctx context.Context, input ports.ListProductsInput) (*ports.ListProductsResult, error) {
			if input.Cursor != "Botas" || input.Limit != 2 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.ListProductsResult{
				Items: []*domain.Product{
					{ID: "p1", Name: "Camisa", Stock: 4, Price: "19.99"},
					{ID: "p2", Name: "Gorra", Stock: 0, Price: "9.99"},
				},
				NextCursor: "Gorra",
			}, nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := jsonContext(e, http.MethodGet, "/v1/products?cursor=Botas&limit=2", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["next_cursor"] != "Gorra" {
		t.Fatalf("expected next cursor, got %+v", resp)
	}
	items, ok := resp["items"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("expected 2 items, got %+v", resp["items"])
	}
	first := items[0].(map[string]any)
	second := items[1].(map[string]any)
	if first["availability"] != "low_stock" || second["availability"] != "out_of_stock" {
		t.Fatalf("availability not derived: %v / %v", first["availability"], second["availability"])
	}
}

func TestProductHandler_List_RejectsBadLimit(t *testing.T) {
	e := newTestEcho()
	h := NewProductHandler(&stubProductService{})

	c, _ := jsonContext(e, http.MethodGet, "/v1/products?limit=abc", "")
	err := h.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestProductHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		createFn: func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
			if input.Name != "Zapato Azul" || input.Stock != 12 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Product{ID: "p9", Name: input.Name, Stock: input.Stock, Price: input.Price}, nil
		},
	}
	h := NewProductHandler(stub)

	body := `{"name":"Zapato Azul","stock":12,"price":"49.99"}`
	c, rec := jsonContext(e, http.MethodPost, "/v1/products", body)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["availability"] != "in_stock" {
		t.Fatalf("expected in_stock, got %+v", resp)
	}
}

func TestProductHandler_Create_MissingName(t *testing.T) {
	e := newTestEcho()
	h := NewProductHandler(&stubProductService{})

	c, _ := jsonContext(e, http.MethodPost, "/v1/products", `{"stock":3,"price":"9.99"}`)
	err := h.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}

func TestProductHandler_AdjustStock_Applies(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		adjustFn: func(ctx context.Context, id string, delta int64) (*ports.StockAdjustment, error) {
			if id != "p1" || delta != -2 {
				t.Fatalf("unexpected args: %s %d", id, delta)
			}
			p := &domain.Product{ID: "p1", Name: "Camisa", Stock: 3, Price: "19.99"}
			return &ports.StockAdjustment{Product: p, Availability: p.Availability()}, nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := jsonContext(e, http.MethodPost, "/v1/products/p1/stock", `{"delta":-2}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.AdjustStock(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["stock"] != float64(3) || resp["availability"] != "low_stock" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestProductHandler_AdjustStock_ZeroDelta(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		adjustFn: func(ctx context.Context, id string, delta int64) (*ports.StockAdjustment, error) {
			t.Fatalf("service should not be called for a zero delta")
			return nil, nil
		},
	}
	h := NewProductHandler(stub)

	c, _ := jsonContext(e, http.MethodPost, "/v1/products/p1/stock", `{"delta":0}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	err := h.AdjustStock(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
	if msg, _ := he.Message.(string); !strings.Contains(msg, "non-zero") {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestProductHandler_AdjustStock_Overdraw(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		adjustFn: func(ctx context.Context, id string, delta int64) (*ports.StockAdjustment, error) {
			return nil, domain.ErrInsufficientStock
		},
	}
	h := NewProductHandler(stub)

	c, _ := jsonContext(e, http.MethodPost, "/v1/products/p1/stock", `{"delta":-99}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	err := h.AdjustStock(c)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestProductHandler_Search_ReturnsCandidates(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		searchFn: func(ctx context.Context, query string) (*ports.SearchResult, error) {
			if query != "Zapato Azul" {
				t.Fatalf("unexpected query: %q", query)
			}
			return &ports.SearchResult{
				Candidates: []string{"Zapato Azul", "zapato azul", "ZAPATO AZUL"},
				Products:   []*domain.Product{{ID: "p9", Name: "Zapato Azul", Stock: 12, Price: "49.99"}},
			}, nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := jsonContext(e, http.MethodPost, "/v1/products/search", `{"query":"Zapato Azul"}`)
	if err := h.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	candidates, ok := resp["candidates"].([]any)
	if !ok || len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %+v", resp["candidates"])
	}
	products, ok := resp["products"].([]any)
	if !ok || len(products) != 1 {
		t.Fatalf("expected 1 product, got %+v", resp["products"])
	}
}
