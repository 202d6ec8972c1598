package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"product-catalog-service/internal/models"
)

type ProductRepository interface {
	Insert(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Save(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context, filter models.ProductFilter) (int64, error)
	Find(ctx context.Context, filter models.ProductFilter, page models.Page) ([]models.Product, error)
	ClearCategory(ctx context.Context, categoryID string) (int64, error)
}

type CategoryRepository interface {
	Insert(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindByTitle(ctx context.Context, title string) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	Save(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
