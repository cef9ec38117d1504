package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	other := errors.New("boom")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), ErrNotFound},
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_lower_key"}, ErrDuplicate},
		{"foreign key", &pgconn.PgError{Code: "23503", ConstraintName: "menu_courses_category_id_fkey"}, ErrForeignKey},
		{"other pg error", &pgconn.PgError{Code: "22001"}, nil},
		{"other", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.in)
			switch {
			case tt.in == nil:
				assert.NoError(t, got)
			case tt.want == nil:
				assert.Equal(t, tt.in, got)
			default:
				assert.ErrorIs(t, got, tt.want)
			}
		})
	}
}

func TestMapError_KeepsConstraintName(t *testing.T) {
	err := mapError(&pgconn.PgError{Code: "23505", ConstraintName: "payment_methods_name_lower_key"})
	assert.Contains(t, err.Error(), "payment_methods_name_lower_key")
}

func TestAffected(t *testing.T) {
	assert.ErrorIs(t, affected(pgconn.NewCommandTag("DELETE 0"), nil), ErrNotFound)
	assert.NoError(t, affected(pgconn.NewCommandTag("UPDATE 1"), nil))
	assert.ErrorIs(t, affected(pgconn.CommandTag{}, &pgconn.PgError{Code: "23503"}), ErrForeignKey)
}
