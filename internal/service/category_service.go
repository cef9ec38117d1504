package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/repository"
)

// CategoryService handles category business logic.
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	media        *MediaService
	log          zerolog.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo *repository.CategoryRepository, media *MediaService, log zerolog.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		media:        media,
		log:          log.With().Str("component", "category_service").Logger(),
	}
}

// GetAll lists every category with its course count.
func (s *CategoryService) GetAll(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

// GetByID retrieves one category.
func (s *CategoryService) GetByID(ctx context.Context, id int) (*model.Category, error) {
	c, err := s.categoryRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCategoryNotFound
	}
	return c, err
}

// Create stores the optional image and inserts the category.
func (s *CategoryService) Create(ctx context.Context, form *model.CategoryForm, image *multipart.FileHeader) (*model.Category, error) {
	c := &model.Category{
		Name:        strings.TrimSpace(form.Name),
		Description: strings.TrimSpace(form.Description),
	}

	if image != nil {
		path, err := s.media.SaveImage(image, FolderCategories)
		if err != nil {
			return nil, err
		}
		c.Image = &path
	}

	if err := s.categoryRepo.Create(ctx, c); err != nil {
		s.media.Delete(c.Image)
		return nil, err
	}
	return c, nil
}

// Update modifies a category. A new image replaces and deletes the previous file.
func (s *CategoryService) Update(ctx context.Context, id int, form *model.CategoryForm, image *multipart.FileHeader) (*model.Category, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldImage := c.Image
	c.Name = strings.TrimSpace(form.Name)
	c.Description = strings.TrimSpace(form.Description)

	if image != nil {
		path, err := s.media.SaveImage(image, FolderCategories)
		if err != nil {
			return nil, err
		}
		c.Image = &path
	}

	if err := s.categoryRepo.Update(ctx, c); err != nil {
		if image != nil {
			s.media.Delete(c.Image)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if image != nil {
		s.media.Delete(oldImage)
	}
	return c, nil
}

// Delete removes a category and its image. Categories with courses are kept.
func (s *CategoryService) Delete(ctx context.Context, id int) error {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrCategoryNotFound
		case errors.Is(err, repository.ErrForeignKey):
			return ErrCategoryInUse
		}
		return err
	}

	s.media.Delete(c.Image)
	s.log.Info().Int("category_id", id).Msg("Category deleted")
	return nil
}
