package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"product-catalog-service/internal/models"
	"product-catalog-service/pkg/e"
)

// CategoryService gestiona categorías. El título es único a nivel de servicio.
type CategoryService struct {
	repo     CategoryRepository
	products ProductRepository
	log      zerolog.Logger
}

func NewCategoryService(repo CategoryRepository, products ProductRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, products: products, log: log}
}

func (s *CategoryService) Create(ctx context.Context, title, description string) (*models.Category, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, e.Invalid("title", "title is required")
	}

	if err := s.ensureTitleFree(ctx, title); err != nil {
		return nil, err
	}

	category := &models.Category{Title: title, Description: description}
	if err := s.repo.Insert(ctx, category); err != nil {
		return nil, e.Wrap("CategoryService.Create", err)
	}
	return category, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (*models.Category, error) {
	objID, err := parseID("category_id", id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, objID)
}

func (s *CategoryService) GetByTitle(ctx context.Context, title string) (*models.Category, error) {
	return s.repo.FindByTitle(ctx, title)
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.repo.FindAll(ctx)
}

// Update busca la categoría por su título actual y sobrescribe los campos recibidos
func (s *CategoryService) Update(ctx context.Context, title string, update models.CategoryUpdate) (*models.Category, error) {
	category, err := s.repo.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		newTitle := strings.TrimSpace(*update.Title)
		if newTitle == "" {
			return nil, e.Invalid("title", "title is required")
		}
		if newTitle != category.Title {
			if err := s.ensureTitleFree(ctx, newTitle); err != nil {
				return nil, err
			}
		}
		category.Title = newTitle
	}
	if update.Description != nil {
		category.Description = *update.Description
	}

	if err := s.repo.Save(ctx, category); err != nil {
		return nil, e.Wrap("CategoryService.Update", err)
	}
	return category, nil
}

// Delete elimina la categoría y deja sin categoría a los productos que la referenciaban
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, category.ID); err != nil {
		return err
	}

	detached, err := s.products.ClearCategory(ctx, category.ID.Hex())
	if err != nil {
		return e.Wrap("CategoryService.Delete", err)
	}

	s.log.Info().
		Str("category_id", category.ID.Hex()).
		Str("title", category.Title).
		Int64("detached_products", detached).
		Msg("category deleted")
	return nil
}

// EnsureDefaults crea las categorías por defecto que todavía no existen
func (s *CategoryService) EnsureDefaults(ctx context.Context, titles []string) error {
	for _, title := range titles {
		if strings.TrimSpace(title) == "" {
			continue
		}

		_, err := s.Create(ctx, title, "")
		switch {
		case err == nil:
			s.log.Info().Str("title", title).Msg("default category created")
		case errors.Is(err, e.ErrConflict):
			// ya existe
		default:
			return err
		}
	}
	return nil
}

func (s *CategoryService) ensureTitleFree(ctx context.Context, title string) error {
	_, err := s.repo.FindByTitle(ctx, title)
	switch {
	case err == nil:
		return e.ErrCategoryExists
	case errors.Is(err, e.ErrNotFound):
		return nil
	default:
		return err
	}
}
