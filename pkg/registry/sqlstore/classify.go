package sqlstore

import (
	"context"
	"database/sql/driver"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/genie-oss/genie/pkg/registry"
)

// classify maps a driver error onto a registry.TransientKind when it is one of
// the failure classes that may succeed on retry. Everything else is returned
// unchanged. ctx is the caller's context: when it is done the error is never
// transient.
func (s *Store) classify(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := registry.TransientKindOf(err); ok {
		return err
	}
	if ctx.Err() != nil {
		return err
	}
	if kind, ok := transientKind(err); ok {
		return registry.NewTransientError(kind, op, err)
	}
	return err
}

func transientKind(err error) (registry.TransientKind, bool) {
	if errors.Is(err, context.DeadlineExceeded) {
		return registry.QueryTimeout, true
	}
	if errors.Is(err, driver.ErrBadConn) {
		return registry.ConnectionTimeout, true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return postgresKind(string(pqErr.Code))
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return sqliteKind(liteErr.Code())
	}
	return "", false
}

func postgresKind(code string) (registry.TransientKind, bool) {
	switch code {
	case pgerrcode.DeadlockDetected, pgerrcode.LockNotAvailable:
		return registry.LockContention, true
	case pgerrcode.SerializationFailure:
		return registry.OptimisticLock, true
	case pgerrcode.QueryCanceled:
		return registry.QueryTimeout, true
	case pgerrcode.TooManyConnections, pgerrcode.CannotConnectNow, pgerrcode.ConnectionFailure:
		return registry.ConnectionTimeout, true
	default:
		return "", false
	}
}

func sqliteKind(code int) (registry.TransientKind, bool) {
	// extended result codes carry the primary code in the low byte
	switch code & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return registry.LockContention, true
	default:
		return "", false
	}
}
