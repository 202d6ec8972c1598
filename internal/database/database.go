package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"product-catalog-service/internal/config"
	"product-catalog-service/internal/models"
	"product-catalog-service/internal/repository"
	"product-catalog-service/internal/repository/memstore"
	"product-catalog-service/internal/service"
)

const (
	ProductsCollection   = "products"
	CategoriesCollection = "categories"

	connectTimeout = 10 * time.Second
)

// ProductStore es el contrato completo del store de productos,
// incluido lo que necesita el job de migración
type ProductStore interface {
	service.ProductRepository
	FindUncategorized(ctx context.Context, page models.Page) ([]models.Product, error)
}

// Stores agrupa los repositorios abiertos según STORE_DRIVER
type Stores struct {
	Products   ProductStore
	Categories service.CategoryRepository

	client *mongo.Client
}

// Connect abre el cliente de Mongo y verifica la conexión
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}

// Open construye los stores configurados
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	if cfg.StoreDriver == config.StoreMemory {
		return &Stores{
			Products:   memstore.NewProductStore(),
			Categories: memstore.NewCategoryStore(),
		}, nil
	}

	client, err := Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}

	db := client.Database(cfg.MongoDB)
	return &Stores{
		Products:   repository.NewProductRepository(db.Collection(ProductsCollection)),
		Categories: repository.NewCategoryRepository(db.Collection(CategoriesCollection)),
		client:     client,
	}, nil
}

// Close libera el cliente de Mongo, si lo hay
func (s *Stores) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
