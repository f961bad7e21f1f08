package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	other := errors.New("connection reset")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), ErrNotFound},
		{"slug unique", &pgconn.PgError{Code: "23505", ConstraintName: "courses_slug_key"}, ErrDuplicateSlug},
		{"foreign key", &pgconn.PgError{Code: "23503"}, ErrForeignKey},
		{"bad uuid", &pgconn.PgError{Code: "22P02"}, ErrNotFound},
		{"other unique", &pgconn.PgError{Code: "23505", ConstraintName: "courses_pkey"}, nil},
		{"unknown", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.in)
			switch {
			case tt.name == "other unique":
				var pgErr *pgconn.PgError
				assert.ErrorAs(t, got, &pgErr)
			case tt.want == nil:
				assert.NoError(t, got)
			default:
				assert.ErrorIs(t, got, tt.want)
			}
		})
	}
}
