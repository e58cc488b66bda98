package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	maxReadAttempts  = 5
	retryBackoffStep = 200 * time.Millisecond
)

// IsTransientConflict classifies pooled-connection errors that are safe
// to retry: a duplicate prepared statement raised when a pooled session
// is reused (Postgres error 42P05).
func IsTransientConflict(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42P05" {
		return true
	}
	return strings.Contains(err.Error(), "prepared statement")
}

// RetryRead runs a read operation, retrying transient conflicts up to
// five attempts with a linearly growing delay. Any other error class
// surfaces immediately. Writes must never go through here: a failed
// write has to surface at once so a state transition or quote insert
// cannot be applied twice.
func RetryRead[T any](ctx context.Context, op func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 1; attempt <= maxReadAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !IsTransientConflict(err) || attempt == maxReadAttempts {
			return zero, err
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(retryBackoffStep * time.Duration(attempt)):
		}
	}
	return zero, lastErr
}
