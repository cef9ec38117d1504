package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soupclass/soup-backend/internal/model"
)

type PaymentMethodRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentMethodRepository(pool *pgxpool.Pool) *PaymentMethodRepository {
	return &PaymentMethodRepository{pool: pool}
}

// GetAll lists payment methods; activeOnly hides Inactive ones.
func (r *PaymentMethodRepository) GetAll(ctx context.Context, activeOnly bool) ([]model.PaymentMethod, error) {
	query := `SELECT id, name, logo, status, created_at, updated_at FROM payment_methods`
	var args []interface{}
	if activeOnly {
		query += ` WHERE status = $1`
		args = append(args, model.StatusActive)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var methods []model.PaymentMethod
	for rows.Next() {
		var p model.PaymentMethod
		if err := rows.Scan(&p.ID, &p.Name, &p.Logo, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		methods = append(methods, p)
	}
	return methods, rows.Err()
}

func (r *PaymentMethodRepository) GetByID(ctx context.Context, id int) (*model.PaymentMethod, error) {
	p := &model.PaymentMethod{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, logo, status, created_at, updated_at FROM payment_methods WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Logo, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

// Create inserts a payment method. Names collide case-insensitively (ErrDuplicate).
func (r *PaymentMethodRepository) Create(ctx context.Context, p *model.PaymentMethod) error {
	return mapError(r.pool.QueryRow(ctx,
		`INSERT INTO payment_methods (name, logo, status) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		p.Name, p.Logo, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
}

func (r *PaymentMethodRepository) Update(ctx context.Context, p *model.PaymentMethod) error {
	return mapError(r.pool.QueryRow(ctx,
		`UPDATE payment_methods SET name = $1, logo = $2, status = $3, updated_at = NOW()
		 WHERE id = $4 RETURNING created_at, updated_at`,
		p.Name, p.Logo, p.Status, p.ID,
	).Scan(&p.CreatedAt, &p.UpdatedAt))
}

func (r *PaymentMethodRepository) Delete(ctx context.Context, id int) error {
	return affected(r.pool.Exec(ctx, `DELETE FROM payment_methods WHERE id = $1`, id))
}
