package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soupclass/soup-backend/internal/model"
)

// CategoryRepository handles category data access.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categorySelect = `
	SELECT c.id, c.name, c.image, c.description, COUNT(mc.id)::int, c.created_at, c.updated_at
	FROM categories c
	LEFT JOIN menu_courses mc ON mc.category_id = c.id`

// GetAll lists categories with the number of courses in each.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx, categorySelect+` GROUP BY c.id ORDER BY c.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Image, &c.Description, &c.MenuCourseCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id int) (*model.Category, error) {
	c := &model.Category{}
	err := r.pool.QueryRow(ctx, categorySelect+` WHERE c.id = $1 GROUP BY c.id`, id).
		Scan(&c.ID, &c.Name, &c.Image, &c.Description, &c.MenuCourseCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

// Exists reports whether a category with id exists.
func (r *CategoryRepository) Exists(ctx context.Context, id int) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

// Create inserts a new category.
func (r *CategoryRepository) Create(ctx context.Context, c *model.Category) error {
	return mapError(r.pool.QueryRow(ctx,
		`INSERT INTO categories (name, image, description) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Image, c.Description,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt))
}

// Update modifies a category's fields, including the image path.
func (r *CategoryRepository) Update(ctx context.Context, c *model.Category) error {
	return mapError(r.pool.QueryRow(ctx,
		`UPDATE categories SET name = $1, image = $2, description = $3, updated_at = NOW()
		 WHERE id = $4 RETURNING created_at, updated_at`,
		c.Name, c.Image, c.Description, c.ID,
	).Scan(&c.CreatedAt, &c.UpdatedAt))
}

// Delete removes a category. Categories that still own courses yield ErrForeignKey.
func (r *CategoryRepository) Delete(ctx context.Context, id int) error {
	return affected(r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id))
}
