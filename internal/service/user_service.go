package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/repository"
	"github.com/soupclass/soup-backend/internal/response"
)

// User errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already in use")
	ErrUserHasData  = errors.New("user still has invoices")
)

// UserService handles user administration.
type UserService struct {
	userRepo    *repository.UserRepository
	authService *AuthService
	log         zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, authService *AuthService, log zerolog.Logger) *UserService {
	return &UserService{
		userRepo:    userRepo,
		authService: authService,
		log:         log.With().Str("component", "user_service").Logger(),
	}
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// ListUsers retrieves users with pagination and an optional status filter.
func (s *UserService) ListUsers(ctx context.Context, status *model.Status, page, perPage int) ([]model.User, *response.Pagination, error) {
	page, perPage = response.NormalizePage(page, perPage)

	users, total, err := s.userRepo.ListPaginated(ctx, status, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, response.NewPagination(page, perPage, total), nil
}

// Create inserts a pre-confirmed user. Role defaults to User and status to Active.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	hash, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		PasswordHash:   hash,
		Role:           req.Role,
		Status:         req.Status,
		EmailConfirmed: true,
	}
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	if u.Status == "" {
		u.Status = model.StatusActive
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info().Int("user_id", u.ID).Str("role", string(u.Role)).Msg("User created")
	return u, nil
}

// Update modifies name, email and status. The email must stay unique.
func (s *UserService) Update(ctx context.Context, id int, req *model.UpdateUserRequest) (*model.User, error) {
	u := &model.User{
		ID:     id,
		Name:   strings.TrimSpace(req.Name),
		Email:  strings.TrimSpace(req.Email),
		Status: req.Status,
	}
	if err := s.userRepo.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	// Deactivation also ends the user's ability to refresh tokens.
	if u.Status == model.StatusInactive {
		if err := s.authService.Logout(ctx, u.ID); err != nil {
			s.log.Warn().Err(err).Int("user_id", u.ID).Msg("Failed to revoke refresh token")
		}
	}
	return u, nil
}

// Delete removes a user. Users with invoices cannot be deleted.
func (s *UserService) Delete(ctx context.Context, id int) error {
	err := s.userRepo.Delete(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrForeignKey):
		return ErrUserHasData
	case err != nil:
		return err
	}
	if err := s.authService.Logout(ctx, id); err != nil {
		s.log.Warn().Err(err).Int("user_id", id).Msg("Failed to revoke refresh token")
	}
	return nil
}
