package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"product-catalog-service/internal/models"
	"product-catalog-service/internal/service"
	"product-catalog-service/pkg/e"
)

type ProductHandler struct {
	products   *service.ProductService
	categories *service.CategoryService
	log        zerolog.Logger
}

func NewProductHandler(products *service.ProductService, categories *service.CategoryService, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{products: products, categories: categories, log: log}
}

type stockAdjustRequest struct {
	Delta *int64 `json:"delta" binding:"required"`
}

type stockSetRequest struct {
	Quantity *int64 `json:"quantity" binding:"required"`
}

type priceSetRequest struct {
	Price *int64 `json:"price" binding:"required"`
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var in models.ProductCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	product, err := h.products.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	ctx := c.Request.Context()

	filter, err := parseProductFilter(c)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	if err := h.resolveCategory(ctx, &filter); err != nil {
		writeError(c, h.log, err)
		return
	}

	page, err := parsePagination(c)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	query := h.products.ListFiltered(filter)

	total, err := query.Count(ctx)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	// Sin limit se devuelve la colección completa
	limit := page.Limit
	if !page.LimitSet {
		limit = total
	}

	products := []models.Product{}
	if limit > 0 {
		if products, err = query.Fetch(ctx, page.Start, limit); err != nil {
			writeError(c, h.log, err)
			return
		}
	}

	status := http.StatusOK
	if page.Requested {
		status = http.StatusPartialContent
	}

	c.JSON(status, ProductListResponse{
		Data:       products,
		Navigation: buildNavigation(c.Request.URL.Path, c.Request.URL.Query(), page.Start, limit, total),
	})
}

// resolveCategory acepta el filtro category como título o como id.
// Si existe una categoría con ese título se filtra por su id; si no, el valor se usa tal cual.
func (h *ProductHandler) resolveCategory(ctx context.Context, filter *models.ProductFilter) error {
	if filter.Category == nil {
		return nil
	}

	category, err := h.categories.GetByTitle(ctx, *filter.Category)
	switch {
	case err == nil:
		filter.Category = models.String(category.ID.Hex())
		return nil
	case errors.Is(err, e.ErrNotFound):
		return nil
	default:
		return err
	}
}

// GET /products/:id
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	product, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// PATCH /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		badRequest(c, err)
		return
	}

	if _, err := h.products.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// POST /products/:id/stock
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	var req stockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	quantity, err := h.products.ModifyStock(c.Request.Context(), c.Param("id"), *req.Delta)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quantity": quantity})
}

// PUT /products/:id/stock
func (h *ProductHandler) SetStock(c *gin.Context) {
	var req stockSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	quantity, err := h.products.SetStock(c.Request.Context(), c.Param("id"), *req.Quantity)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quantity": quantity})
}

// PUT /products/:id/price
func (h *ProductHandler) SetPrice(c *gin.Context) {
	var req priceSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	price, err := h.products.SetPrice(c.Request.Context(), c.Param("id"), *req.Price)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"price": price})
}
