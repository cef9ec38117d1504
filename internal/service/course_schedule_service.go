package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/repository"
)

// CourseScheduleService manages the slot-limited assignment of courses to schedules.
type CourseScheduleService struct {
	csRepo       *repository.CourseScheduleRepository
	courseRepo   *repository.MenuCourseRepository
	scheduleRepo *repository.ScheduleRepository
	slots        *SlotPublisher
	log          zerolog.Logger
}

// NewCourseScheduleService creates a new CourseScheduleService.
func NewCourseScheduleService(
	csRepo *repository.CourseScheduleRepository,
	courseRepo *repository.MenuCourseRepository,
	scheduleRepo *repository.ScheduleRepository,
	slots *SlotPublisher,
	log zerolog.Logger,
) *CourseScheduleService {
	return &CourseScheduleService{
		csRepo:       csRepo,
		courseRepo:   courseRepo,
		scheduleRepo: scheduleRepo,
		slots:        slots,
		log:          log.With().Str("component", "course_schedule_service").Logger(),
	}
}

// ListByMenuCourse returns a course's schedules. Unknown courses yield ErrMenuCourseNotFound.
func (s *CourseScheduleService) ListByMenuCourse(ctx context.Context, menuCourseID int) ([]model.CourseSchedule, error) {
	if _, err := s.courseRepo.GetByID(ctx, menuCourseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMenuCourseNotFound
		}
		return nil, err
	}
	return s.csRepo.ListByMenuCourse(ctx, menuCourseID)
}

// GetByID retrieves one course schedule.
func (s *CourseScheduleService) GetByID(ctx context.Context, id int) (*model.CourseSchedule, error) {
	cs, err := s.csRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCourseScheduleNotFound
	}
	return cs, err
}

// Create assigns a course to a schedule. Status defaults to Active.
func (s *CourseScheduleService) Create(ctx context.Context, req *model.CreateCourseScheduleRequest) (*model.CourseSchedule, error) {
	if _, err := s.courseRepo.GetByID(ctx, req.MenuCourseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMenuCourseNotFound
		}
		return nil, err
	}
	if _, err := s.scheduleRepo.GetByID(ctx, req.ScheduleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	cs := &model.CourseSchedule{
		MenuCourseID:  req.MenuCourseID,
		ScheduleID:    req.ScheduleID,
		AvailableSlot: *req.AvailableSlot,
		Status:        req.Status,
	}
	if cs.Status == "" {
		cs.Status = model.StatusActive
	}

	if err := s.csRepo.Create(ctx, cs); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrCourseScheduleExists
		case errors.Is(err, repository.ErrForeignKey):
			return nil, ErrMenuCourseNotFound
		}
		return nil, err
	}

	created, err := s.GetByID(ctx, cs.ID)
	if err != nil {
		return nil, err
	}
	s.slots.Publish(ctx, slotUpdateOf(created))
	return created, nil
}

// Update changes the slot counter and status.
func (s *CourseScheduleService) Update(ctx context.Context, id int, req *model.UpdateCourseScheduleRequest) (*model.CourseSchedule, error) {
	if err := s.csRepo.Update(ctx, id, *req.AvailableSlot, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseScheduleNotFound
		}
		return nil, err
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.slots.Publish(ctx, slotUpdateOf(updated))
	return updated, nil
}

// Delete removes a course schedule that nobody has bought.
func (s *CourseScheduleService) Delete(ctx context.Context, id int) error {
	err := s.csRepo.Delete(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrCourseScheduleNotFound
	case errors.Is(err, repository.ErrForeignKey):
		return ErrCourseScheduleInUse
	case err != nil:
		return err
	}

	s.slots.Publish(ctx, model.SlotUpdate{CourseScheduleID: id, Status: model.StatusInactive, Deleted: true})
	return nil
}

func slotUpdateOf(cs *model.CourseSchedule) model.SlotUpdate {
	return model.SlotUpdate{
		CourseScheduleID: cs.ID,
		AvailableSlot:    cs.AvailableSlot,
		Status:           cs.Status,
	}
}
