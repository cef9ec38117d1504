package service

import (
	"context"
	"errors"
	"time"

	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/repository"
)

type ScheduleService struct {
	scheduleRepo *repository.ScheduleRepository
}

func NewScheduleService(scheduleRepo *repository.ScheduleRepository) *ScheduleService {
	return &ScheduleService{scheduleRepo: scheduleRepo}
}

func (s *ScheduleService) GetAll(ctx context.Context) ([]model.Schedule, error) {
	return s.scheduleRepo.GetAll(ctx)
}

func (s *ScheduleService) GetByID(ctx context.Context, id int) (*model.Schedule, error) {
	sch, err := s.scheduleRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrScheduleNotFound
	}
	return sch, err
}

// Create stores a schedule; dates are normalized to UTC.
func (s *ScheduleService) Create(ctx context.Context, date time.Time) (*model.Schedule, error) {
	sch := &model.Schedule{ScheduleDate: date.UTC()}
	if err := s.scheduleRepo.Create(ctx, sch); err != nil {
		return nil, err
	}
	return sch, nil
}

func (s *ScheduleService) Update(ctx context.Context, id int, date time.Time) (*model.Schedule, error) {
	sch := &model.Schedule{ID: id, ScheduleDate: date.UTC()}
	if err := s.scheduleRepo.Update(ctx, sch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return sch, nil
}

func (s *ScheduleService) Delete(ctx context.Context, id int) error {
	err := s.scheduleRepo.Delete(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrScheduleNotFound
	case errors.Is(err, repository.ErrForeignKey):
		return ErrScheduleInUse
	}
	return err
}
