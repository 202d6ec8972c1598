package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"product-catalog-service/internal/handlers"
	"product-catalog-service/internal/models"
)

func seedProducts(t *testing.T, s *testServer, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		s.createProduct(t, fmt.Sprintf("P%d", i), int64(i), int64(i))
	}
}

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestGetProducts_Pagination(t *testing.T) {
	s := newTestServer(t)
	seedProducts(t, s, 12)

	rec := s.do(t, http.MethodGet, "/products?start=0&limit=10", nil)
	require.Equal(t, http.StatusPartialContent, rec.Code)

	first := decode[handlers.ProductListResponse](t, rec)
	assert.Len(t, first.Data, 10)
	assert.Equal(t, int64(1), first.Navigation.Current)
	assert.Equal(t, int64(2), first.Navigation.Pages)
	assert.Equal(t, "/products?start=0&limit=10", first.Navigation.Self)
	assert.Nil(t, first.Navigation.Prev)
	require.NotNil(t, first.Navigation.Next)
	assert.Equal(t, "/products?start=10&limit=10", *first.Navigation.Next)

	rec = s.do(t, http.MethodGet, *first.Navigation.Next, nil)
	require.Equal(t, http.StatusPartialContent, rec.Code)

	second := decode[handlers.ProductListResponse](t, rec)
	assert.Len(t, second.Data, 2)
	assert.Equal(t, int64(2), second.Navigation.Current)
	assert.Nil(t, second.Navigation.Next)
	require.NotNil(t, second.Navigation.Prev)
	assert.Equal(t, "/products?start=0&limit=10", *second.Navigation.Prev)
}

func TestGetProducts_FollowingNextCoversEverything(t *testing.T) {
	s := newTestServer(t)
	seedProducts(t, s, 23)

	rec := s.do(t, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[handlers.ProductListResponse](t, rec)
	require.Len(t, all.Data, 23)

	for _, limit := range []int{1, 4, 10, 23, 50} {
		t.Run(fmt.Sprintf("limit=%d", limit), func(t *testing.T) {
			var collected []models.Product
			link := fmt.Sprintf("/products?start=0&limit=%d", limit)

			for pages := 0; ; pages++ {
				require.Less(t, pages, 100, "navigation does not terminate")

				rec := s.do(t, http.MethodGet, link, nil)
				require.Equal(t, http.StatusPartialContent, rec.Code)
				page := decode[handlers.ProductListResponse](t, rec)
				collected = append(collected, page.Data...)

				if page.Navigation.Next == nil {
					break
				}
				link = *page.Navigation.Next
			}

			assert.Equal(t, names(all.Data), names(collected))
		})
	}
}

func TestGetProducts_WithoutParams(t *testing.T) {
	s := newTestServer(t)
	seedProducts(t, s, 12)

	rec := s.do(t, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[handlers.ProductListResponse](t, rec)
	assert.Len(t, resp.Data, 12)
	assert.Equal(t, int64(1), resp.Navigation.Current)
	assert.Nil(t, resp.Navigation.Next)
	assert.Nil(t, resp.Navigation.Prev)
}

func TestGetProducts_EmptyCatalog(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.JSONEq(t, `[]`, string(raw["data"]))

	var nav handlers.Navigation
	require.NoError(t, json.Unmarshal(raw["navigation"], &nav))
	assert.Equal(t, "/products?start=0&limit=1", nav.Self)

	// el enlace self debe poder seguirse
	rec = s.do(t, http.MethodGet, nav.Self, nil)
	assert.Equal(t, http.StatusPartialContent, rec.Code)
}

func TestGetProducts_CategoryFilter(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	electronics, err := s.categories.Create(ctx, "Electronics", "Devices and gadgets.")
	require.NoError(t, err)
	tv := s.createProduct(t, "TV", 500, 3)
	s.createProduct(t, "Chair", 40, 2)

	rec := s.do(t, http.MethodPost, "/category/Electronics", map[string]any{"product_id": tv.ID.Hex()})
	require.Equal(t, http.StatusOK, rec.Code)

	testCases := []struct {
		name          string
		path          string
		expectedNames []string
	}{
		{"By title", "/products?category=Electronics", []string{"TV"}},
		{"By id", "/products?category=" + electronics.ID.Hex(), []string{"TV"}},
		{"Unknown title", "/products?category=Garden", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, tc.path, nil)
			require.Equal(t, http.StatusOK, rec.Code)

			page := decode[handlers.ProductListResponse](t, rec)
			assert.Equal(t, tc.expectedNames, names(page.Data))
		})
	}
}

func TestGetProducts_Filters(t *testing.T) {
	s := newTestServer(t)
	seedProducts(t, s, 12)

	testCases := []struct {
		name           string
		path           string
		expectedStatus int
		expectedNames  []string
	}{
		{"Price range", "/products?price_gte=5&price_lte=8", http.StatusOK, []string{"P5", "P6", "P7", "P8"}},
		{"Name equality", "/products?name=P3", http.StatusOK, []string{"P3"}},
		{"Quantity bound", "/products?qty_gte=11", http.StatusOK, []string{"P11", "P12"}},
		{"Filter with pagination", "/products?price_gte=5&start=1&limit=2", http.StatusPartialContent, []string{"P6", "P7"}},
		{"No match", "/products?brand=Nope", http.StatusOK, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, tc.path, nil)
			require.Equal(t, tc.expectedStatus, rec.Code)

			resp := decode[handlers.ProductListResponse](t, rec)
			assert.Equal(t, tc.expectedNames, names(resp.Data))
		})
	}

	t.Run("Navigation keeps the filters", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/products?price_gte=5&start=0&limit=2", nil)
		require.Equal(t, http.StatusPartialContent, rec.Code)

		resp := decode[handlers.ProductListResponse](t, rec)
		require.NotNil(t, resp.Navigation.Next)
		assert.Equal(t, "/products?start=2&limit=2&price_gte=5", *resp.Navigation.Next)
		assert.Equal(t, int64(4), resp.Navigation.Pages)
	})
}

func TestGetProducts_BadParams(t *testing.T) {
	s := newTestServer(t)
	seedProducts(t, s, 3)

	for _, path := range []string{
		"/products?price_lte=abc",
		"/products?qty_gte=1.5",
		"/products?start=-1",
		"/products?start=x",
		"/products?limit=0",
		"/products?limit=-3",
	} {
		t.Run(path, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decode[handlers.ErrorResponse](t, rec)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestCreateProduct(t *testing.T) {
	s := newTestServer(t)

	t.Run("Created", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/products", map[string]any{
			"name":        "Table",
			"price":       120,
			"quantity":    5,
			"brand":       "WoodWorks",
			"description": "Solid oak table.",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		product := decode[models.Product](t, rec)
		assert.False(t, product.ID.IsZero())
		assert.Equal(t, "Table", product.Name)
		assert.Equal(t, int64(120), product.Price)
		require.NotNil(t, product.Category)
		assert.Equal(t, "", *product.Category)

		rec = s.do(t, http.MethodGet, "/products/"+product.ID.Hex(), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, product, decode[models.Product](t, rec))
	})

	t.Run("Zero price and quantity are allowed", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/products", map[string]any{"name": "Free", "price": 0, "quantity": 0})
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	for name, body := range map[string]any{
		"Missing price":     map[string]any{"name": "Table", "quantity": 5},
		"Missing name":      map[string]any{"price": 5, "quantity": 5},
		"Price not numeric": map[string]any{"name": "Table", "price": "abc", "quantity": 5},
		"Negative quantity": map[string]any{"name": "Table", "price": 5, "quantity": -1},
		"Malformed JSON":    `{"name":`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/products", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetProductByID(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/products/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/products/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProduct(t *testing.T) {
	s := newTestServer(t)
	product := s.createProduct(t, "Chair", 40, 2)
	path := "/products/" + product.ID.Hex()

	rec := s.do(t, http.MethodPatch, path, map[string]any{"price": 75})
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = s.do(t, http.MethodGet, path, nil)
	updated := decode[models.Product](t, rec)
	assert.Equal(t, int64(75), updated.Price)
	assert.Equal(t, "Chair", updated.Name)

	t.Run("Large integers keep their precision", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, path, `{"price": 9007199254740993}`)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, int64(9007199254740993), decode[models.Product](t, rec).Price)
	})

	t.Run("Integral float", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, path, `{"price": 75.0}`)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, int64(75), decode[models.Product](t, rec).Price)
	})

	testCases := []struct {
		name           string
		path           string
		body           any
		expectedStatus int
	}{
		{"Unknown field", path, map[string]any{"colour": "red"}, http.StatusBadRequest},
		{"Price out of range", path, `{"price": 1e30}`, http.StatusBadRequest},
		{"Quantity out of range", path, `{"quantity": -1e30}`, http.StatusBadRequest},
		{"Negative price", path, map[string]any{"price": -1}, http.StatusBadRequest},
		{"Empty body", path, map[string]any{}, http.StatusBadRequest},
		{"Not an object", path, `[1,2]`, http.StatusBadRequest},
		{"Missing product", "/products/" + primitive.NewObjectID().Hex(), map[string]any{"price": 1}, http.StatusNotFound},
		{"Invalid id", "/products/zzz", map[string]any{"price": 1}, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPatch, tc.path, tc.body)
			assert.Equal(t, tc.expectedStatus, rec.Code)
		})
	}
}

func TestDeleteProduct(t *testing.T) {
	s := newTestServer(t)
	product := s.createProduct(t, "Chair", 40, 2)
	path := "/products/" + product.ID.Hex()

	rec := s.do(t, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, path, nil).Code)
}

func TestStockAndPrice(t *testing.T) {
	s := newTestServer(t)
	product := s.createProduct(t, "Chair", 40, 5)
	base := "/products/" + product.ID.Hex()

	type quantityResponse struct {
		Quantity int64 `json:"quantity"`
	}
	type priceResponse struct {
		Price int64 `json:"price"`
	}

	rec := s.do(t, http.MethodPost, base+"/stock", map[string]any{"delta": -10})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, base+"/stock", map[string]any{"delta": 3})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(8), decode[quantityResponse](t, rec).Quantity)

	rec = s.do(t, http.MethodPost, base+"/stock", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, base+"/stock", map[string]any{"quantity": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, base+"/stock", map[string]any{"quantity": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), decode[quantityResponse](t, rec).Quantity)

	rec = s.do(t, http.MethodPut, base+"/price", map[string]any{"price": 99})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(99), decode[priceResponse](t, rec).Price)

	rec = s.do(t, http.MethodPut, "/products/"+primitive.NewObjectID().Hex()+"/price", map[string]any{"price": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
