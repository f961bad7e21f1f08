package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateSlug is returned when a write collides with another course's slug.
	ErrDuplicateSlug = errors.New("course with this slug already exists")

	// ErrForeignKey is returned when a referenced record does not exist.
	ErrForeignKey = errors.New("referenced record does not exist")
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"

	slugConstraint = "courses_slug_key"
)

// translate maps driver errors onto the package's sentinel errors. Unknown
// errors are returned unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == slugConstraint:
			return ErrDuplicateSlug
		case pgErr.Code == codeForeignKeyViolation:
			return ErrForeignKey
		case pgErr.Code == codeInvalidText:
			// malformed uuid in a lookup: nothing can match it
			return ErrNotFound
		}
	}
	return err
}
