package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soupclass/soup-backend/internal/model"
)

// MenuCourseRepository handles menu course data access.
type MenuCourseRepository struct {
	pool *pgxpool.Pool
}

// NewMenuCourseRepository creates a new MenuCourseRepository.
func NewMenuCourseRepository(pool *pgxpool.Pool) *MenuCourseRepository {
	return &MenuCourseRepository{pool: pool}
}

const menuCourseSelect = `
	SELECT mc.id, mc.name, mc.image, mc.price, mc.description, mc.category_id, c.name, mc.created_at, mc.updated_at
	FROM menu_courses mc
	JOIN categories c ON c.id = mc.category_id`

// GetAll lists courses, optionally restricted to one category.
func (r *MenuCourseRepository) GetAll(ctx context.Context, categoryID *int) ([]model.MenuCourse, error) {
	query := menuCourseSelect
	var args []interface{}
	if categoryID != nil {
		query += ` WHERE mc.category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY mc.name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.MenuCourse
	for rows.Next() {
		var m model.MenuCourse
		if err := rows.Scan(&m.ID, &m.Name, &m.Image, &m.Price, &m.Description, &m.CategoryID, &m.CategoryName, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, m)
	}
	return courses, rows.Err()
}

// GetByID retrieves a course with its category name.
func (r *MenuCourseRepository) GetByID(ctx context.Context, id int) (*model.MenuCourse, error) {
	m := &model.MenuCourse{}
	err := r.pool.QueryRow(ctx, menuCourseSelect+` WHERE mc.id = $1`, id).
		Scan(&m.ID, &m.Name, &m.Image, &m.Price, &m.Description, &m.CategoryID, &m.CategoryName, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return m, nil
}

// Create inserts a course. An unknown category yields ErrForeignKey.
func (r *MenuCourseRepository) Create(ctx context.Context, m *model.MenuCourse) error {
	return mapError(r.pool.QueryRow(ctx,
		`INSERT INTO menu_courses (name, image, price, description, category_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		m.Name, m.Image, m.Price, m.Description, m.CategoryID,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt))
}

// Update modifies a course, including its image path.
func (r *MenuCourseRepository) Update(ctx context.Context, m *model.MenuCourse) error {
	return mapError(r.pool.QueryRow(ctx,
		`UPDATE menu_courses
		 SET name = $1, image = $2, price = $3, description = $4, category_id = $5, updated_at = NOW()
		 WHERE id = $6 RETURNING created_at, updated_at`,
		m.Name, m.Image, m.Price, m.Description, m.CategoryID, m.ID,
	).Scan(&m.CreatedAt, &m.UpdatedAt))
}

// Delete removes a course. Courses with schedules yield ErrForeignKey.
func (r *MenuCourseRepository) Delete(ctx context.Context, id int) error {
	return affected(r.pool.Exec(ctx, `DELETE FROM menu_courses WHERE id = $1`, id))
}
