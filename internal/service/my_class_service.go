package service

import (
	"context"

	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/repository"
)

// MyClassService lists the course schedules a user has purchased.
type MyClassService struct {
	myClassRepo *repository.MyClassRepository
}

// NewMyClassService creates a new MyClassService.
func NewMyClassService(myClassRepo *repository.MyClassRepository) *MyClassService {
	return &MyClassService{myClassRepo: myClassRepo}
}

// ListByUser returns the user's classes ordered by schedule date.
func (s *MyClassService) ListByUser(ctx context.Context, userID int) ([]model.MyClass, error) {
	classes, err := s.myClassRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if classes == nil {
		classes = []model.MyClass{}
	}
	return classes, nil
}
