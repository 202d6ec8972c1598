package service

import (
	"context"

	"product-catalog-service/internal/models"
	"product-catalog-service/pkg/e"
)

// ProductCategoryService agrupa las operaciones que cruzan productos y categorías
type ProductCategoryService struct {
	products   *ProductService
	categories *CategoryService
	repo       ProductRepository
}

func NewProductCategoryService(products *ProductService, categories *CategoryService, repo ProductRepository) *ProductCategoryService {
	return &ProductCategoryService{products: products, categories: categories, repo: repo}
}

// ListProductsInCategory devuelve los productos cuya categoría es categoryID
func (s *ProductCategoryService) ListProductsInCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	return s.products.ListFiltered(models.ProductFilter{Category: models.String(categoryID)}).All(ctx)
}

func (s *ProductCategoryService) AddProductToCategory(ctx context.Context, productID, categoryID string) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	product.SetCategory(category.ID.Hex())
	if err := s.repo.Save(ctx, product); err != nil {
		return nil, e.Wrap("ProductCategoryService.AddProductToCategory", err)
	}
	return product, nil
}

func (s *ProductCategoryService) RemoveProductFromCategory(ctx context.Context, productID string) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.SetCategory("")
	if err := s.repo.Save(ctx, product); err != nil {
		return nil, e.Wrap("ProductCategoryService.RemoveProductFromCategory", err)
	}
	return product, nil
}
