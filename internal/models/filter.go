package models

// ProductFilter agrupa los filtros opcionales del listado.
// Un campo nil no se aplica; todos los filtros presentes se combinan con AND.
type ProductFilter struct {
	Name     *string
	Category *string
	Brand    *string

	PriceLTE    *int64
	PriceGTE    *int64
	QuantityLTE *int64
	QuantityGTE *int64
}

// Matches evalúa el filtro en memoria con la misma semántica que la query de Mongo
func (f ProductFilter) Matches(p *Product) bool {
	if f.Name != nil && p.Name != *f.Name {
		return false
	}
	if f.Brand != nil && p.Brand != *f.Brand {
		return false
	}
	if f.Category != nil && (p.Category == nil || *p.Category != *f.Category) {
		return false
	}
	if f.PriceLTE != nil && p.Price > *f.PriceLTE {
		return false
	}
	if f.PriceGTE != nil && p.Price < *f.PriceGTE {
		return false
	}
	if f.QuantityLTE != nil && p.Quantity > *f.QuantityLTE {
		return false
	}
	if f.QuantityGTE != nil && p.Quantity < *f.QuantityGTE {
		return false
	}
	return true
}

// Page define una ventana offset/limit; Limit 0 significa sin límite
type Page struct {
	Skip  int64
	Limit int64
}

// String devuelve un puntero a s
func String(s string) *string { return &s }

// Int64 devuelve un puntero a v
func Int64(v int64) *int64 { return &v }
