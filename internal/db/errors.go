package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicate is returned when a unique constraint is violated,
	// e.g. reusing a username or liking the same post twice.
	ErrDuplicate = errors.New("duplicate key value")

	// ErrForeignKey is returned when a write references a row that does
	// not exist (author, post or parent comment).
	ErrForeignKey = errors.New("foreign key violation")

	// ErrNoUpdateFields is returned by partial updates when none of the
	// optional fields were supplied.
	ErrNoUpdateFields = errors.New("no fields to update")
)

// writeError translates PostgreSQL constraint failures into the
// package's sentinel errors so callers can match with errors.Is.
func writeError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w (%s)", op, ErrDuplicate, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%s: %w (%s)", op, ErrForeignKey, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
