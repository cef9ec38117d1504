package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soupclass/soup-backend/internal/model"
)

const userColumns = `id, name, email, password_hash, role, status, email_confirmed, created_at, updated_at`

// UserRepository handles user data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.EmailConfirmed, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail retrieves a user by email, case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
}

// ListPaginated retrieves users ordered by name with an optional status filter.
func (r *UserRepository) ListPaginated(ctx context.Context, status *model.Status, limit, offset int) ([]model.User, int, error) {
	where := ``
	var args []interface{}
	if status != nil {
		where = ` WHERE status = $1`
		args = append(args, *status)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	argIdx := len(args) + 1
	query := `SELECT ` + userColumns + ` FROM users` + where +
		` ORDER BY name, id LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

// Create inserts a new user. A taken email yields ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, role, status, email_confirmed)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		u.Name, u.Email, u.PasswordHash, u.Role, u.Status, u.EmailConfirmed,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return mapError(err)
}

// Update modifies a user's name, email and status.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE users SET name = $1, email = $2, status = $3, updated_at = NOW()
		 WHERE id = $4
		 RETURNING `+userColumns,
		u.Name, u.Email, u.Status, u.ID,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.EmailConfirmed, &u.CreatedAt, &u.UpdatedAt)
	return mapError(err)
}

// UpdatePassword replaces a user's password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	return affected(r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	))
}

// ConfirmEmail marks a user's email address as confirmed.
func (r *UserRepository) ConfirmEmail(ctx context.Context, id int) error {
	return affected(r.pool.Exec(ctx,
		`UPDATE users SET email_confirmed = TRUE, updated_at = NOW() WHERE id = $1`, id,
	))
}

// Upsert creates the user or refreshes its profile when the email already exists.
// Used by seeding and the create-admin command.
func (r *UserRepository) Upsert(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, role, status, email_confirmed)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (LOWER(email)) DO UPDATE
		 SET name = EXCLUDED.name, password_hash = EXCLUDED.password_hash, role = EXCLUDED.role,
		     status = EXCLUDED.status, email_confirmed = EXCLUDED.email_confirmed, updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		u.Name, u.Email, u.PasswordHash, u.Role, u.Status, u.EmailConfirmed,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return mapError(err)
}

// Delete removes a user. Users referenced by invoices yield ErrForeignKey.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	return affected(r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id))
}
