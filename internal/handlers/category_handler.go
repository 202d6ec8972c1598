package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"product-catalog-service/internal/models"
	"product-catalog-service/internal/service"
	"product-catalog-service/pkg/e"
)

type CategoryHandler struct {
	categories *service.CategoryService
	assoc      *service.ProductCategoryService
	log        zerolog.Logger
}

func NewCategoryHandler(categories *service.CategoryService, assoc *service.ProductCategoryService, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, assoc: assoc, log: log}
}

// productRef es el cuerpo de POST/DELETE /category/:title.
// El resto de campos de producto que envíe el cliente son informativos y se ignoran.
type productRef struct {
	ProductID string `json:"product_id"`
}

func bindProductRef(c *gin.Context) (string, error) {
	var ref productRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		return "", err
	}
	if ref.ProductID == "" {
		return "", e.Invalid("product_id", "product_id is required")
	}
	return ref.ProductID, nil
}

// GET /category/:title
func (h *CategoryHandler) GetProductsInCategory(c *gin.Context) {
	ctx := c.Request.Context()

	category, err := h.categories.GetByTitle(ctx, c.Param("title"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	products, err := h.assoc.ListProductsInCategory(ctx, category.ID.Hex())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// POST /category/:title
func (h *CategoryHandler) AddProductToCategory(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := bindProductRef(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	category, err := h.categories.GetByTitle(ctx, c.Param("title"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	product, err := h.assoc.AddProductToCategory(ctx, productID, category.ID.Hex())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// DELETE /category/:title
func (h *CategoryHandler) RemoveProductFromCategory(c *gin.Context) {
	productID, err := bindProductRef(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	product, err := h.assoc.RemoveProductFromCategory(c.Request.Context(), productID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// GET /categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// POST /categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var in models.Category
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	category, err := h.categories.Create(c.Request.Context(), in.Title, in.Description)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GET /categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.categories.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// PUT /categories/:title
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var update models.CategoryUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, err)
		return
	}

	category, err := h.categories.Update(c.Request.Context(), c.Param("title"), update)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// DELETE /categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
