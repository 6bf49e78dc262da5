package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"boardcamp-backend/internal/domain"

	"github.com/lib/pq"
)

// mapError translates driver errors into the domain taxonomy.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return fmt.Errorf("%s: %w", op, domain.ErrConflict)
		case "foreign_key_violation", "check_violation":
			return domain.InvalidInputf("%s: %s", op, pqErr.Message)
		}
	}
	return &domain.StorageError{Op: op, Err: err}
}
