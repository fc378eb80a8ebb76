package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "equipment-dashboard/pkg/errors"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	numericOutOfRange   = "22003"
)

// uniqueConstraint returns the violated constraint name when err is a unique violation.
func uniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// writeError reports bad references and out of range numbers as invalid input;
// anything else is wrapped with op.
func writeError(op, table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case foreignKeyViolation:
			return apperrors.NewInvalidInputError("%s refers to a record that does not exist", referencedColumn(table, pgErr.ConstraintName))
		case numericOutOfRange:
			return apperrors.NewInvalidInputError("numeric value out of range")
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// referencedColumn extracts the column from a default constraint name such as
// maintenance_schedules_assigned_to_fkey.
func referencedColumn(table, constraint string) string {
	column := strings.TrimSuffix(strings.TrimPrefix(constraint, table+"_"), "_fkey")
	if column == "" || column == constraint {
		return "reference"
	}
	return column
}
