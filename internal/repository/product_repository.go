package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"product-catalog-service/internal/models"
	"product-catalog-service/pkg/e"
)

const (
	defaultTimeout = 5 * time.Second
	readTimeout    = 3 * time.Second
	queryTimeout   = 10 * time.Second
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(collection *mongo.Collection) *ProductRepository {
	return &ProductRepository{
		collection: collection,
	}
}

// Insert crea un nuevo producto
func (r *ProductRepository) Insert(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return e.Wrap("insert product", err)
	}
	return nil
}

// FindByID obtiene un producto por ID
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap("find product", err)
	}

	return &product, nil
}

// Save reemplaza el documento completo del producto
func (r *ProductRepository) Save(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return e.Wrap("save product", err)
	}

	if result.MatchedCount == 0 {
		return e.ErrProductNotFound
	}

	return nil
}

// Delete elimina el producto de forma definitiva
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return e.Wrap("delete product", err)
	}

	if result.DeletedCount == 0 {
		return e.ErrProductNotFound
	}

	return nil
}

// Count cuenta los productos que cumplen el filtro
func (r *ProductRepository) Count(ctx context.Context, filter models.ProductFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	total, err := r.collection.CountDocuments(ctx, buildProductFilter(filter))
	if err != nil {
		return 0, e.Wrap("count products", err)
	}
	return total, nil
}

// Find lista productos filtrados, ordenados por _id
func (r *ProductRepository) Find(ctx context.Context, filter models.ProductFilter, page models.Page) ([]models.Product, error) {
	return r.find(ctx, buildProductFilter(filter), page)
}

// FindUncategorized lista productos legacy que no tienen el campo category
func (r *ProductRepository) FindUncategorized(ctx context.Context, page models.Page) ([]models.Product, error) {
	return r.find(ctx, uncategorizedFilter(), page)
}

// ClearCategory desvincula todos los productos de una categoría
func (r *ProductRepository) ClearCategory(ctx context.Context, categoryID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.collection.UpdateMany(
		ctx,
		bson.M{"category": categoryID},
		bson.M{"$set": bson.M{"category": ""}},
	)
	if err != nil {
		return 0, e.Wrap("clear category", err)
	}

	return result.ModifiedCount, nil
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M, page models.Page) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, pageOptions(page))
	if err != nil {
		return nil, e.Wrap("find products", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err = cursor.All(ctx, &products); err != nil {
		return nil, e.Wrap("decode products", err)
	}

	return products, nil
}
