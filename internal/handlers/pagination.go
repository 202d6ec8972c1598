package handlers

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"product-catalog-service/internal/models"
	"product-catalog-service/pkg/e"
)

// Navigation contiene los enlaces de paginación; next/prev son null cuando no aplican
type Navigation struct {
	Self    string  `json:"self"`
	Next    *string `json:"next"`
	Prev    *string `json:"prev"`
	Current int64   `json:"current"`
	Pages   int64   `json:"pages"`
}

type ProductListResponse struct {
	Data       []models.Product `json:"data"`
	Navigation Navigation       `json:"navigation"`
}

// pagination representa start/limit tal como llegaron en la petición
type pagination struct {
	Start    int64
	Limit    int64
	LimitSet bool
	// Requested es true si la petición trajo start o limit (respuesta 206)
	Requested bool
}

// filterParams son los parámetros de filtro que se propagan a los enlaces
var filterParams = []string{"name", "category", "brand", "price_lte", "price_gte", "qty_lte", "qty_gte"}

func parsePagination(c *gin.Context) (pagination, error) {
	var p pagination

	if raw, ok := c.GetQuery("start"); ok {
		start, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || start < 0 {
			return p, e.Invalid("start", "start must be a non-negative integer")
		}
		p.Start = start
		p.Requested = true
	}

	if raw, ok := c.GetQuery("limit"); ok {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 1 {
			return p, e.Invalid("limit", "limit must be a positive integer")
		}
		p.Limit = limit
		p.LimitSet = true
		p.Requested = true
	}

	return p, nil
}

// parseProductFilter lee los filtros opcionales del listado.
// Los filtros de texto vacíos se ignoran.
func parseProductFilter(c *gin.Context) (models.ProductFilter, error) {
	var f models.ProductFilter

	if v := c.Query("name"); v != "" {
		f.Name = models.String(v)
	}
	if v := c.Query("category"); v != "" {
		f.Category = models.String(v)
	}
	if v := c.Query("brand"); v != "" {
		f.Brand = models.String(v)
	}

	bounds := []struct {
		param string
		dst   **int64
	}{
		{"price_lte", &f.PriceLTE},
		{"price_gte", &f.PriceGTE},
		{"qty_lte", &f.QuantityLTE},
		{"qty_gte", &f.QuantityGTE},
	}
	for _, b := range bounds {
		raw := c.Query(b.param)
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return f, e.Invalid(b.param, b.param+" must be an integer")
		}
		*b.dst = models.Int64(n)
	}

	return f, nil
}

// buildNavigation calcula los enlaces para la ventana [start, start+limit) sobre total registros
func buildNavigation(path string, query url.Values, start, limit, total int64) Navigation {
	extra := url.Values{}
	for _, key := range filterParams {
		if v := query.Get(key); v != "" {
			extra.Set(key, v)
		}
	}

	// limit=0 no es un valor válido en la petición; con una colección vacía los enlaces usan 1
	linkLimit := strconv.FormatInt(max(limit, 1), 10)

	link := func(s int64) string {
		uri := path + "?start=" + strconv.FormatInt(s, 10) + "&limit=" + linkLimit
		if len(extra) > 0 {
			uri += "&" + extra.Encode()
		}
		return uri
	}

	nav := Navigation{
		Self:    link(start),
		Current: 1,
	}

	if limit > 0 {
		nav.Current = start/limit + 1
		nav.Pages = (total + limit - 1) / limit

		if start+limit < total {
			next := link(start + limit)
			nav.Next = &next
		}
	}

	if start > 0 {
		prev := link(max(start-limit, 0))
		nav.Prev = &prev
	}

	return nav
}
