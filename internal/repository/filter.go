package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"product-catalog-service/internal/models"
)

// buildProductFilter construye el filtro de MongoDB a partir de los filtros opcionales
func buildProductFilter(f models.ProductFilter) bson.M {
	filter := bson.M{}

	if f.Name != nil {
		filter["name"] = *f.Name
	}
	if f.Brand != nil {
		filter["brand"] = *f.Brand
	}
	if f.Category != nil {
		filter["category"] = *f.Category
	}

	if r := rangeFilter(f.PriceLTE, f.PriceGTE); r != nil {
		filter["price"] = r
	}
	if r := rangeFilter(f.QuantityLTE, f.QuantityGTE); r != nil {
		filter["quantity"] = r
	}

	return filter
}

// rangeFilter combina cotas inclusivas en un único operador; nil si no hay ninguna
func rangeFilter(lte, gte *int64) bson.M {
	if lte == nil && gte == nil {
		return nil
	}

	r := bson.M{}
	if lte != nil {
		r["$lte"] = *lte
	}
	if gte != nil {
		r["$gte"] = *gte
	}
	return r
}

// uncategorizedFilter selecciona productos legacy sin el campo category
func uncategorizedFilter() bson.M {
	return bson.M{"category": bson.M{"$exists": false}}
}

// pageOptions aplica skip/limit con orden estable por _id
func pageOptions(page models.Page) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if page.Skip > 0 {
		opts.SetSkip(page.Skip)
	}
	if page.Limit > 0 {
		opts.SetLimit(page.Limit)
	}
	return opts
}
