package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"product-catalog-service/internal/config"
	"product-catalog-service/internal/database"
	"product-catalog-service/internal/handlers"
	"product-catalog-service/internal/routes"
	"product-catalog-service/internal/service"
)

// newServer conecta servicios, handlers y rutas sobre los stores abiertos
// y crea las categorías por defecto
func newServer(ctx context.Context, cfg *config.Config, stores *database.Stores, log zerolog.Logger) (*http.Server, error) {
	productService := service.NewProductService(stores.Products)
	categoryService := service.NewCategoryService(stores.Categories, stores.Products, log)
	assocService := service.NewProductCategoryService(productService, categoryService, stores.Products)

	if err := categoryService.EnsureDefaults(ctx, cfg.DefaultCategories); err != nil {
		return nil, err
	}

	router := routes.NewRouter(log)
	routes.RegisterRoutes(
		router,
		handlers.NewProductHandler(productService, categoryService, log),
		handlers.NewCategoryHandler(categoryService, assocService, log),
	)

	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
