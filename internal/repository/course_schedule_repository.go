package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soupclass/soup-backend/internal/model"
)

// CourseScheduleRepository handles menu_course_schedules data access.
type CourseScheduleRepository struct {
	pool *pgxpool.Pool
}

// NewCourseScheduleRepository creates a new CourseScheduleRepository.
func NewCourseScheduleRepository(pool *pgxpool.Pool) *CourseScheduleRepository {
	return &CourseScheduleRepository{pool: pool}
}

const courseScheduleSelect = `
	SELECT ms.id, ms.available_slot, ms.status, ms.menu_course_id, mc.name, ms.schedule_id, s.schedule_date,
	       ms.created_at, ms.updated_at
	FROM menu_course_schedules ms
	JOIN menu_courses mc ON mc.id = ms.menu_course_id
	JOIN schedules s ON s.id = ms.schedule_id`

func scanCourseSchedule(row rowScanner) (*model.CourseSchedule, error) {
	cs := &model.CourseSchedule{}
	err := row.Scan(&cs.ID, &cs.AvailableSlot, &cs.Status, &cs.MenuCourseID, &cs.MenuCourseName,
		&cs.ScheduleID, &cs.ScheduleDate, &cs.CreatedAt, &cs.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return cs, nil
}

// ListByMenuCourse returns a course's schedules ordered by date.
func (r *CourseScheduleRepository) ListByMenuCourse(ctx context.Context, menuCourseID int) ([]model.CourseSchedule, error) {
	rows, err := r.pool.Query(ctx,
		courseScheduleSelect+` WHERE ms.menu_course_id = $1 ORDER BY s.schedule_date ASC`, menuCourseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.CourseSchedule
	for rows.Next() {
		cs, err := scanCourseSchedule(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *cs)
	}
	return list, rows.Err()
}

// GetByID retrieves a course schedule with course name and date.
func (r *CourseScheduleRepository) GetByID(ctx context.Context, id int) (*model.CourseSchedule, error) {
	return scanCourseSchedule(r.pool.QueryRow(ctx, courseScheduleSelect+` WHERE ms.id = $1`, id))
}

// Create inserts a course schedule. A duplicate (course, schedule) pair yields
// ErrDuplicate and an unknown course or schedule yields ErrForeignKey.
func (r *CourseScheduleRepository) Create(ctx context.Context, cs *model.CourseSchedule) error {
	return mapError(r.pool.QueryRow(ctx,
		`INSERT INTO menu_course_schedules (menu_course_id, schedule_id, available_slot, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		cs.MenuCourseID, cs.ScheduleID, cs.AvailableSlot, cs.Status,
	).Scan(&cs.ID, &cs.CreatedAt, &cs.UpdatedAt))
}

// Update changes the slot counter and status.
func (r *CourseScheduleRepository) Update(ctx context.Context, id, availableSlot int, status model.Status) error {
	return affected(r.pool.Exec(ctx,
		`UPDATE menu_course_schedules SET available_slot = $1, status = $2, updated_at = NOW() WHERE id = $3`,
		availableSlot, status, id,
	))
}

// Delete removes a course schedule. Purchased schedules yield ErrForeignKey.
func (r *CourseScheduleRepository) Delete(ctx context.Context, id int) error {
	return affected(r.pool.Exec(ctx, `DELETE FROM menu_course_schedules WHERE id = $1`, id))
}

const courseScheduleDetailSelect = `
	SELECT ms.id, mc.id, s.id, mc.name, c.name, mc.image, mc.price, s.schedule_date, ms.available_slot, ms.status
	FROM menu_course_schedules ms
	JOIN menu_courses mc ON mc.id = ms.menu_course_id
	JOIN categories c ON c.id = mc.category_id
	JOIN schedules s ON s.id = ms.schedule_id
	WHERE ms.id = ANY($1)`

// GetDetails loads the joined view of the given course schedules. Unknown IDs are skipped.
func (r *CourseScheduleRepository) GetDetails(ctx context.Context, ids []int) ([]model.CourseScheduleDetail, error) {
	return queryDetails(ctx, r.pool, courseScheduleDetailSelect+` ORDER BY s.schedule_date, ms.id`, ids)
}

// LockDetails is GetDetails inside a checkout transaction: the selected
// menu_course_schedules rows stay locked until the transaction ends. Rows are
// locked in id order so concurrent checkouts cannot deadlock.
func (r *CourseScheduleRepository) LockDetails(ctx context.Context, q DBTX, ids []int) ([]model.CourseScheduleDetail, error) {
	return queryDetails(ctx, q, courseScheduleDetailSelect+` ORDER BY ms.id FOR UPDATE OF ms`, ids)
}

func queryDetails(ctx context.Context, q DBTX, query string, ids []int) ([]model.CourseScheduleDetail, error) {
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.CourseScheduleDetail
	for rows.Next() {
		var d model.CourseScheduleDetail
		if err := rows.Scan(&d.CourseScheduleID, &d.MenuCourseID, &d.ScheduleID, &d.Name, &d.Category,
			&d.Image, &d.Price, &d.Schedule, &d.AvailableSlot, &d.Status); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// TakeSlot decrements one seat and flips the schedule to Inactive when it runs out.
func (r *CourseScheduleRepository) TakeSlot(ctx context.Context, q DBTX, id int) (model.SlotUpdate, error) {
	u := model.SlotUpdate{CourseScheduleID: id}
	err := q.QueryRow(ctx,
		`UPDATE menu_course_schedules
		 SET available_slot = available_slot - 1,
		     status = CASE WHEN available_slot - 1 <= 0 THEN 'Inactive' ELSE status END,
		     updated_at = NOW()
		 WHERE id = $1 AND available_slot > 0
		 RETURNING available_slot, status`, id,
	).Scan(&u.AvailableSlot, &u.Status)
	return u, mapError(err)
}
