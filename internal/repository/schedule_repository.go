package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soupclass/soup-backend/internal/model"
)

type ScheduleRepository struct {
	pool *pgxpool.Pool
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

func (r *ScheduleRepository) GetAll(ctx context.Context) ([]model.Schedule, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, schedule_date, created_at, updated_at FROM schedules ORDER BY schedule_date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []model.Schedule
	for rows.Next() {
		var s model.Schedule
		if err := rows.Scan(&s.ID, &s.ScheduleDate, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id int) (*model.Schedule, error) {
	s := &model.Schedule{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, schedule_date, created_at, updated_at FROM schedules WHERE id = $1`, id,
	).Scan(&s.ID, &s.ScheduleDate, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return s, nil
}

func (r *ScheduleRepository) Create(ctx context.Context, s *model.Schedule) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO schedules (schedule_date) VALUES ($1) RETURNING id, created_at, updated_at`,
		s.ScheduleDate).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *ScheduleRepository) Update(ctx context.Context, s *model.Schedule) error {
	return mapError(r.pool.QueryRow(ctx,
		`UPDATE schedules SET schedule_date = $1, updated_at = NOW() WHERE id = $2
		 RETURNING created_at, updated_at`,
		s.ScheduleDate, s.ID).Scan(&s.CreatedAt, &s.UpdatedAt))
}

// Delete removes a schedule. Schedules still assigned to courses yield ErrForeignKey.
func (r *ScheduleRepository) Delete(ctx context.Context, id int) error {
	return affected(r.pool.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id))
}
