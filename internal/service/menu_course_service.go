package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/repository"
)

// MenuCourseService handles menu course business logic.
type MenuCourseService struct {
	courseRepo   *repository.MenuCourseRepository
	categoryRepo *repository.CategoryRepository
	media        *MediaService
	log          zerolog.Logger
}

// NewMenuCourseService creates a new MenuCourseService.
func NewMenuCourseService(courseRepo *repository.MenuCourseRepository, categoryRepo *repository.CategoryRepository, media *MediaService, log zerolog.Logger) *MenuCourseService {
	return &MenuCourseService{
		courseRepo:   courseRepo,
		categoryRepo: categoryRepo,
		media:        media,
		log:          log.With().Str("component", "menu_course_service").Logger(),
	}
}

// GetAll lists courses, optionally within one category.
func (s *MenuCourseService) GetAll(ctx context.Context, categoryID *int) ([]model.MenuCourse, error) {
	return s.courseRepo.GetAll(ctx, categoryID)
}

// GetByID retrieves a course.
func (s *MenuCourseService) GetByID(ctx context.Context, id int) (*model.MenuCourse, error) {
	m, err := s.courseRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrMenuCourseNotFound
	}
	return m, err
}

// applyForm copies validated form fields onto m after checking the category.
func (s *MenuCourseService) applyForm(ctx context.Context, m *model.MenuCourse, form *model.MenuCourseForm) error {
	price, err := decimal.NewFromString(strings.TrimSpace(form.Price))
	if err != nil || !price.IsPositive() {
		return ErrInvalidPrice
	}

	exists, err := s.categoryRepo.Exists(ctx, form.CategoryID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCategoryNotFound
	}

	m.Name = strings.TrimSpace(form.Name)
	m.Price = price.Round(2)
	m.Description = strings.TrimSpace(form.Description)
	m.CategoryID = form.CategoryID
	return nil
}

// Create validates the category, stores the optional image and inserts the course.
func (s *MenuCourseService) Create(ctx context.Context, form *model.MenuCourseForm, image *multipart.FileHeader) (*model.MenuCourse, error) {
	m := &model.MenuCourse{}
	if err := s.applyForm(ctx, m, form); err != nil {
		return nil, err
	}

	if image != nil {
		path, err := s.media.SaveImage(image, FolderMenuCourses)
		if err != nil {
			return nil, err
		}
		m.Image = &path
	}

	if err := s.courseRepo.Create(ctx, m); err != nil {
		s.media.Delete(m.Image)
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return s.GetByID(ctx, m.ID)
}

// Update modifies a course. A new image replaces and deletes the previous file.
func (s *MenuCourseService) Update(ctx context.Context, id int, form *model.MenuCourseForm, image *multipart.FileHeader) (*model.MenuCourse, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyForm(ctx, m, form); err != nil {
		return nil, err
	}

	oldImage := m.Image
	if image != nil {
		path, err := s.media.SaveImage(image, FolderMenuCourses)
		if err != nil {
			return nil, err
		}
		m.Image = &path
	}

	if err := s.courseRepo.Update(ctx, m); err != nil {
		if image != nil {
			s.media.Delete(m.Image)
		}
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrMenuCourseNotFound
		case errors.Is(err, repository.ErrForeignKey):
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if image != nil {
		s.media.Delete(oldImage)
	}
	return s.GetByID(ctx, id)
}

// Delete removes a course and its image. Courses with schedules are kept.
func (s *MenuCourseService) Delete(ctx context.Context, id int) error {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrMenuCourseNotFound
		case errors.Is(err, repository.ErrForeignKey):
			return ErrMenuCourseInUse
		}
		return err
	}

	s.media.Delete(m.Image)
	s.log.Info().Int("menu_course_id", id).Msg("Menu course deleted")
	return nil
}
