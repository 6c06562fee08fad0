package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/moviedb-backend/internal/kv"
)

// mapError converts pgx/pgconn errors into kv storage errors.
// Serialization failures and deadlocks become kv.ErrConflict; anything else
// is wrapped as is so context errors stay matchable.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", // serialization_failure
			"40P01": // deadlock_detected
			return kv.Wrap(op, fmt.Errorf("%w: %s", kv.ErrConflict, pgErr.Message))
		}
	}

	return kv.Wrap(op, err)
}
