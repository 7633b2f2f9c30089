package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clickshop/shop-system/internal/api/metrics"
	"github.com/clickshop/shop-system/internal/core/domain"
	"github.com/clickshop/shop-system/internal/core/ports"
)

// ProductHandler handles catalog browsing, stock adjustment and the
// assisted search endpoint.
type ProductHandler struct {
	productService ports.ProductService
}

func NewProductHandler(productService ports.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List returns one page of the catalog ordered by name.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        cursor  query     string  false  "Name of the last product on the previous page"
// @Param        limit   query     int     false  "Page size, capped server-side"
// @Success      200     {object}  productPageResponse
// @Router       /v1/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	input := ports.ListProductsInput{Cursor: c.QueryParam("cursor")}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		input.Limit = limit
	}

	page, err := h.productService.ListProducts(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productPageResponse{
		Items:      toProductResponses(page.Items),
		NextCursor: page.NextCursor,
	})
}

// Get returns a single product with its availability tier.
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.productService.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Create adds a product to the catalog.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.productService.CreateProduct(c.Request().Context(), ports.CreateProductInput{
		Name:        req.Name,
		Stock:       req.Stock,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProductResponse(product))
}

// Update replaces the editable fields of a product.
func (h *ProductHandler) Update(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.productService.UpdateProduct(c.Request().Context(), c.Param("id"), ports.CreateProductInput{
		Name:        req.Name,
		Stock:       req.Stock,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// AdjustStock applies a signed delta to a product's stock and returns the
// authoritative state afterwards. A negative delta larger than the current
// stock is rejected before touching the store.
//
// @Summary      Adjust product stock
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Product ID"
// @Param        body  body      adjustStockRequest  true  "Signed stock delta"
// @Success      200   {object}  productResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/products/{id}/stock [post]
func (h *ProductHandler) AdjustStock(c echo.Context) error {
	var req adjustStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Delta == 0 {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "delta must be a non-zero integer")
	}

	adj, err := h.productService.AdjustStock(c.Request().Context(), c.Param("id"), req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientStock):
			metrics.StockAdjustmentsTotal.WithLabelValues("rejected").Inc()
		default:
			metrics.StockAdjustmentsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.StockAdjustmentsTotal.WithLabelValues("applied").Inc()
	return c.JSON(http.StatusOK, toProductResponse(adj.Product))
}

// Search resolves a free-text query into candidate names and the matching
// products. The candidate list is returned so the caller can show what was
// actually looked up.
//
// @Summary      Assisted product search
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      searchRequest  true  "Free-text query"
// @Success      200   {object}  searchResponse
// @Router       /v1/products/search [post]
func (h *ProductHandler) Search(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	start := time.Now()
	res, err := h.productService.Search(c.Request().Context(), req.Query)
	metrics.SearchAssistDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchAssistsTotal.WithLabelValues("error").Inc()
		return err
	}

	if len(res.Products) > 0 {
		metrics.SearchAssistsTotal.WithLabelValues("hit").Inc()
	} else {
		metrics.SearchAssistsTotal.WithLabelValues("miss").Inc()
	}
	return c.JSON(http.StatusOK, searchResponse{
		Candidates: res.Candidates,
		Products:   toProductResponses(res.Products),
	})
}
