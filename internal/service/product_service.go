package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"product-catalog-service/internal/models"
	"product-catalog-service/pkg/e"
)

// ProductService implementa las operaciones sobre productos
type ProductService struct {
	repo ProductRepository
}

func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// Create valida el payload y persiste un producto nuevo
func (s *ProductService) Create(ctx context.Context, in models.ProductCreate) (*models.Product, error) {
	const op = "ProductService.Create"

	if err := validateCreate(in); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        in.Name,
		Price:       *in.Price,
		Quantity:    *in.Quantity,
		Brand:       in.Brand,
		Description: in.Description,
	}
	if in.Category != nil {
		product.SetCategory(*in.Category)
	} else {
		product.SetCategory("")
	}

	if err := s.repo.Insert(ctx, product); err != nil {
		return nil, e.Wrap(op, err)
	}
	return product, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	objID, err := parseID("product_id", id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, objID)
}

// Update sobrescribe únicamente los campos recibidos.
// Solo se aceptan claves de la lista permitida; cualquier otra devuelve ErrInvalidField.
func (s *ProductService) Update(ctx context.Context, id string, fields map[string]any) (*models.Product, error) {
	if len(fields) == 0 {
		return nil, e.Invalid("body", "no fields to update")
	}
	for key := range fields {
		if _, ok := patchers[key]; !ok {
			return nil, e.UnknownField(key)
		}
	}

	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for key, value := range fields {
		if err := patchers[key](product, value); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, e.Wrap("ProductService.Update", err)
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, product.ID)
}

// ModifyStock suma delta (con signo) a la cantidad y devuelve la nueva cantidad
func (s *ProductService) ModifyStock(ctx context.Context, id string, delta int64) (int64, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	if product.Quantity+delta < 0 {
		return 0, e.ErrNegativeStock
	}
	product.Quantity += delta

	if err := s.repo.Save(ctx, product); err != nil {
		return 0, e.Wrap("ProductService.ModifyStock", err)
	}
	return product.Quantity, nil
}

func (s *ProductService) SetStock(ctx context.Context, id string, value int64) (int64, error) {
	if value < 0 {
		return 0, e.ErrNegativeStock
	}

	product, err := s.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	product.Quantity = value

	if err := s.repo.Save(ctx, product); err != nil {
		return 0, e.Wrap("ProductService.SetStock", err)
	}
	return product.Quantity, nil
}

func (s *ProductService) SetPrice(ctx context.Context, id string, value int64) (int64, error) {
	if value < 0 {
		return 0, e.ErrNegativePrice
	}

	product, err := s.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	product.Price = value

	if err := s.repo.Save(ctx, product); err != nil {
		return 0, e.Wrap("ProductService.SetPrice", err)
	}
	return product.Price, nil
}

// ListFiltered devuelve una consulta perezosa; no toca el store hasta evaluarla
func (s *ProductService) ListFiltered(filter models.ProductFilter) *ProductQuery {
	return &ProductQuery{repo: s.repo, filter: filter}
}

// --- Métodos auxiliares ---

type patchFunc func(p *models.Product, value any) error

// patchers es la lista de campos que un PATCH puede modificar
var patchers = map[string]patchFunc{
	"name": func(p *models.Product, v any) error {
		s, err := stringValue("name", v)
		if err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			return e.Invalid("name", "name is required")
		}
		p.Name = s
		return nil
	},
	"price": func(p *models.Product, v any) error {
		n, err := intValue("price", v)
		if err != nil {
			return err
		}
		if n < 0 {
			return e.ErrNegativePrice
		}
		p.Price = n
		return nil
	},
	"quantity": func(p *models.Product, v any) error {
		n, err := intValue("quantity", v)
		if err != nil {
			return err
		}
		if n < 0 {
			return e.ErrNegativeStock
		}
		p.Quantity = n
		return nil
	},
	"brand": func(p *models.Product, v any) error {
		s, err := stringValue("brand", v)
		p.Brand = s
		return err
	},
	"description": func(p *models.Product, v any) error {
		s, err := stringValue("description", v)
		p.Description = s
		return err
	},
	"category": func(p *models.Product, v any) error {
		s, err := stringValue("category", v)
		if err != nil {
			return err
		}
		p.SetCategory(s)
		return nil
	},
}

func stringValue(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", e.Invalid(field, field+" must be a string")
	}
	return s, nil
}

// intValue acepta los tipos numéricos que produce la decodificación JSON
func intValue(field string, v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		// float64(math.MaxInt64) es 2^63, que ya no cabe en int64
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, e.Invalid(field, field+" must be an integer")
		}
		return int64(n), nil
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		// 75.0 o 1e2 siguen siendo enteros válidos
		f, err := n.Float64()
		if err != nil {
			return 0, e.Invalid(field, field+" must be an integer")
		}
		return intValue(field, f)
	default:
		return 0, e.Invalid(field, field+" must be an integer")
	}
}

func validateCreate(in models.ProductCreate) error {
	if strings.TrimSpace(in.Name) == "" {
		return e.Invalid("name", "name is required")
	}
	if in.Price == nil {
		return e.Invalid("price", "price is required")
	}
	if in.Quantity == nil {
		return e.Invalid("quantity", "quantity is required")
	}
	if *in.Price < 0 {
		return e.Invalid("price", "price cannot be negative")
	}
	if *in.Quantity < 0 {
		return e.Invalid("quantity", "quantity cannot be negative")
	}
	return nil
}

func parseID(field, id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, e.Invalid(field, "invalid "+strings.ReplaceAll(field, "_", " "))
	}
	return objID, nil
}
