package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"product-catalog-service/internal/handlers"
	"product-catalog-service/internal/models"
	"product-catalog-service/internal/repository/memstore"
	"product-catalog-service/internal/routes"
	"product-catalog-service/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Helpers ---

type testServer struct {
	router     *gin.Engine
	products   *service.ProductService
	categories *service.CategoryService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := zerolog.Nop()
	productStore := memstore.NewProductStore()

	products := service.NewProductService(productStore)
	categories := service.NewCategoryService(memstore.NewCategoryStore(), productStore, log)
	assoc := service.NewProductCategoryService(products, categories, productStore)

	router := routes.NewRouter(log)
	routes.RegisterRoutes(router,
		handlers.NewProductHandler(products, categories, log),
		handlers.NewCategoryHandler(categories, assoc, log),
	)

	return &testServer{router: router, products: products, categories: categories}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) createProduct(t *testing.T, name string, price, quantity int64) *models.Product {
	t.Helper()
	product, err := s.products.Create(context.Background(), models.ProductCreate{
		Name:     name,
		Price:    models.Int64(price),
		Quantity: models.Int64(quantity),
		Brand:    "Acme",
	})
	require.NoError(t, err)
	return product
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
