package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soupclass/soup-backend/internal/model"
)

// DashboardRepository aggregates platform statistics.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetStats computes every counter in a single round trip.
func (r *DashboardRepository) GetStats(ctx context.Context) (*model.DashboardStats, error) {
	s := &model.DashboardStats{}
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM users)::int,
			(SELECT COUNT(*) FROM users WHERE status = 'Active')::int,
			(SELECT COUNT(*) FROM categories)::int,
			(SELECT COUNT(*) FROM menu_courses)::int,
			(SELECT COUNT(*) FROM invoices)::int,
			(SELECT COALESCE(SUM(total_price), 0) FROM invoices)`,
	).Scan(&s.TotalUsers, &s.ActiveUsers, &s.TotalCategories, &s.TotalCourses, &s.TotalInvoices, &s.TotalRevenue)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// TopCourses ranks menu courses by purchased seats, using the price paid on each line.
func (r *DashboardRepository) TopCourses(ctx context.Context, limit int) ([]model.CourseSales, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT mc.id, mc.name, COUNT(imc.id)::int, COALESCE(SUM(imc.price), 0)
		 FROM invoice_menu_courses imc
		 JOIN menu_course_schedules mcs ON mcs.id = imc.menu_course_schedule_id
		 JOIN menu_courses mc ON mc.id = mcs.menu_course_id
		 GROUP BY mc.id, mc.name
		 ORDER BY COUNT(imc.id) DESC, mc.name
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	top := []model.CourseSales{}
	for rows.Next() {
		var cs model.CourseSales
		if err := rows.Scan(&cs.MenuCourseID, &cs.Name, &cs.Sold, &cs.Revenue); err != nil {
			return nil, err
		}
		top = append(top, cs)
	}
	return top, rows.Err()
}
