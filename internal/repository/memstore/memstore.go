// Package memstore implementa los repositorios de productos y categorías en memoria.
// Respeta la misma semántica que los repositorios de Mongo (orden por _id,
// filtros AND, category ausente vs vacía) y sirve para tests y desarrollo local.
package memstore

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"product-catalog-service/internal/models"
	"product-catalog-service/pkg/e"
)

type ProductStore struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]models.Product
}

func NewProductStore() *ProductStore {
	return &ProductStore{items: make(map[primitive.ObjectID]models.Product)}
}

func (s *ProductStore) Insert(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	s.items[product.ID] = cloneProduct(*product)
	return nil
}

func (s *ProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.items[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	out := cloneProduct(p)
	return &out, nil
}

func (s *ProductStore) Save(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[product.ID]; !ok {
		return e.ErrProductNotFound
	}
	s.items[product.ID] = cloneProduct(*product)
	return nil
}

func (s *ProductStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return e.ErrProductNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *ProductStore) Count(_ context.Context, filter models.ProductFilter) (int64, error) {
	return int64(len(s.matching(filter.Matches))), nil
}

func (s *ProductStore) Find(_ context.Context, filter models.ProductFilter, page models.Page) ([]models.Product, error) {
	return paginate(s.matching(filter.Matches), page), nil
}

func (s *ProductStore) FindUncategorized(_ context.Context, page models.Page) ([]models.Product, error) {
	return paginate(s.matching(func(p *models.Product) bool { return p.Category == nil }), page), nil
}

func (s *ProductStore) ClearCategory(_ context.Context, categoryID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, p := range s.items {
		if p.Category != nil && *p.Category == categoryID {
			p.SetCategory("")
			s.items[id] = p
			n++
		}
	}
	return n, nil
}

// InsertLegacy guarda un producto tal cual, sin tocar Category; simula registros antiguos
func (s *ProductStore) InsertLegacy(product models.Product) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	s.items[product.ID] = cloneProduct(product)
	return product.ID
}

func (s *ProductStore) matching(match func(*models.Product) bool) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, 0, len(s.items))
	for _, p := range s.items {
		if match(&p) {
			out = append(out, cloneProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0
	})
	return out
}

func paginate(items []models.Product, page models.Page) []models.Product {
	if page.Skip >= int64(len(items)) {
		return []models.Product{}
	}
	items = items[page.Skip:]
	if page.Limit > 0 && page.Limit < int64(len(items)) {
		items = items[:page.Limit]
	}
	return items
}

func cloneProduct(p models.Product) models.Product {
	if p.Category != nil {
		c := *p.Category
		p.Category = &c
	}
	return p
}

type CategoryStore struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]models.Category
}

func NewCategoryStore() *CategoryStore {
	return &CategoryStore{items: make(map[primitive.ObjectID]models.Category)}
}

func (s *CategoryStore) Insert(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	s.items[category.ID] = *category
	return nil
}

func (s *CategoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.items[id]
	if !ok {
		return nil, e.ErrCategoryNotFound
	}
	return &c, nil
}

func (s *CategoryStore) FindByTitle(_ context.Context, title string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.items {
		if c.Title == title {
			return &c, nil
		}
	}
	return nil, e.ErrCategoryNotFound
}

func (s *CategoryStore) FindAll(_ context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Category, 0, len(s.items))
	for _, c := range s.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *CategoryStore) Save(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[category.ID]; !ok {
		return e.ErrCategoryNotFound
	}
	s.items[category.ID] = *category
	return nil
}

func (s *CategoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return e.ErrCategoryNotFound
	}
	delete(s.items, id)
	return nil
}
