package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soupclass/soup-backend/internal/model"
)

// MyClassRepository handles purchased-class data access.
type MyClassRepository struct {
	pool *pgxpool.Pool
}

// NewMyClassRepository creates a new MyClassRepository.
func NewMyClassRepository(pool *pgxpool.Pool) *MyClassRepository {
	return &MyClassRepository{pool: pool}
}

// ListByUser returns the user's purchased course schedules by schedule date.
func (r *MyClassRepository) ListByUser(ctx context.Context, userID int) ([]model.MyClass, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT ms.id, mc.id, mc.name, mc.image, c.name, s.schedule_date, m.invoice_id
		 FROM my_classes m
		 JOIN menu_course_schedules ms ON ms.id = m.menu_course_schedule_id
		 JOIN menu_courses mc ON mc.id = ms.menu_course_id
		 JOIN categories c ON c.id = mc.category_id
		 JOIN schedules s ON s.id = ms.schedule_id
		 WHERE m.user_id = $1
		 ORDER BY s.schedule_date ASC, ms.id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.MyClass
	for rows.Next() {
		var mc model.MyClass
		if err := rows.Scan(&mc.CourseScheduleID, &mc.MenuCourseID, &mc.Name, &mc.Image, &mc.Category, &mc.Schedule, &mc.InvoiceID); err != nil {
			return nil, err
		}
		classes = append(classes, mc)
	}
	return classes, rows.Err()
}

// OwnedAmong returns which of ids the user already owns.
func (r *MyClassRepository) OwnedAmong(ctx context.Context, q DBTX, userID int, ids []int) (map[int]bool, error) {
	rows, err := q.Query(ctx,
		`SELECT menu_course_schedule_id FROM my_classes
		 WHERE user_id = $1 AND menu_course_schedule_id = ANY($2)`, userID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	owned := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		owned[id] = true
	}
	return owned, rows.Err()
}

// Insert enrolls the user into a course schedule bought on invoiceID.
func (r *MyClassRepository) Insert(ctx context.Context, q DBTX, userID, courseScheduleID, invoiceID int) error {
	_, err := q.Exec(ctx,
		`INSERT INTO my_classes (user_id, menu_course_schedule_id, invoice_id) VALUES ($1, $2, $3)`,
		userID, courseScheduleID, invoiceID,
	)
	return mapError(err)
}
