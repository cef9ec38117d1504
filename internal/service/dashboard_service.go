package service

import (
	"context"
	"fmt"

	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/repository"
)

// DashboardService exposes aggregate statistics.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboardRepo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// MaxTopCourses bounds the best-seller ranking.
const MaxTopCourses = 20

// GetStats returns the current platform counters and the top sellers.
func (s *DashboardService) GetStats(ctx context.Context, top int) (*model.DashboardStats, error) {
	stats, err := s.dashboardRepo.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard counters: %w", err)
	}

	if top <= 0 {
		stats.TopCourses = []model.CourseSales{}
		return stats, nil
	}
	if top > MaxTopCourses {
		top = MaxTopCourses
	}
	stats.TopCourses, err = s.dashboardRepo.TopCourses(ctx, top)
	if err != nil {
		return nil, fmt.Errorf("dashboard top courses: %w", err)
	}
	return stats, nil
}
