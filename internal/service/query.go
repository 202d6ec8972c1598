package service

import (
	"context"

	"product-catalog-service/internal/models"
)

// ProductQuery es el resultado perezoso de ListFiltered.
// Cada llamada vuelve a ejecutar la consulta contra el store, así que puede
// evaluarse varias veces y siempre refleja el estado actual.
type ProductQuery struct {
	repo   ProductRepository
	filter models.ProductFilter
}

func (q *ProductQuery) Filter() models.ProductFilter {
	return q.filter
}

func (q *ProductQuery) Count(ctx context.Context) (int64, error) {
	return q.repo.Count(ctx, q.filter)
}

// Fetch devuelve la ventana [skip, skip+limit); limit 0 devuelve el resto
func (q *ProductQuery) Fetch(ctx context.Context, skip, limit int64) ([]models.Product, error) {
	return q.repo.Find(ctx, q.filter, models.Page{Skip: skip, Limit: limit})
}

func (q *ProductQuery) All(ctx context.Context) ([]models.Product, error) {
	return q.Fetch(ctx, 0, 0)
}
