package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"product-catalog-service/internal/models"
)

type ProductCreator interface {
	Create(ctx context.Context, in models.ProductCreate) (*models.Product, error)
}

// Load lee un array JSON de productos y crea un registro por entrada.
// Se detiene en el primer error y devuelve cuántos productos se crearon.
func Load(ctx context.Context, r io.Reader, creator ProductCreator) (int, error) {
	var entries []models.ProductCreate
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return 0, fmt.Errorf("decode seed data: %w", err)
	}

	for i, entry := range entries {
		if _, err := creator.Create(ctx, entry); err != nil {
			return i, fmt.Errorf("seed entry %d (%q): %w", i, entry.Name, err)
		}
	}

	return len(entries), nil
}

func LoadFile(ctx context.Context, path string, creator ProductCreator) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return Load(ctx, f, creator)
}
