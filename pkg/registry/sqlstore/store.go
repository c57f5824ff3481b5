// Package sqlstore implements registry.Store on top of database/sql. Postgres
// (lib/pq) and SQLite (modernc.org/sqlite) are supported with one schema.
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/benbjohnson/clock"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq" // postgres driver
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/genie-oss/genie/pkg/genieerrors"
	"github.com/genie-oss/genie/pkg/models/criteria"
	"github.com/genie-oss/genie/pkg/registry"
)

const errComponent = "SQLStore"

// Dialect selects the SQL backend.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

const (
	defaultAcquireTimeout = 5 * time.Second
	defaultQueryTimeout   = 30 * time.Second
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// SQLClient is so we can pass *sql.Conn and *sql.Tx to the same functions
type SQLClient interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type Params struct {
	Dialect Dialect
	// DSN is a postgres connection string or a sqlite file path.
	DSN string
	// AcquireTimeout bounds how long to wait for a pooled connection.
	AcquireTimeout time.Duration
	// QueryTimeout bounds a single statement.
	QueryTimeout time.Duration
	Matcher      criteria.Matcher
	Clock        clock.Clock
}

type Store struct {
	db             *sql.DB
	dialect        Dialect
	acquireTimeout time.Duration
	queryTimeout   time.Duration
	matcher        criteria.Matcher
	clock          clock.Clock
}

// Open connects to the database and applies pending migrations.
func Open(ctx context.Context, params Params) (*Store, error) {
	if params.AcquireTimeout == 0 {
		params.AcquireTimeout = defaultAcquireTimeout
	}
	if params.QueryTimeout == 0 {
		params.QueryTimeout = defaultQueryTimeout
	}
	if params.Clock == nil {
		params.Clock = clock.New()
	}

	driverName, dsn, err := driverFor(params.Dialect, params.DSN)
	if err != nil {
		return nil, err
	}
	db, err := otelsql.Open(driverName, dsn, otelsql.WithAttributes(attribute.String("db.system", driverName)))
	if err != nil {
		return nil, genieerrors.Wrap(err, "failed to open %s database", params.Dialect).WithComponent(errComponent)
	}
	if params.Dialect == DialectSQLite {
		// a single writer avoids SQLITE_BUSY storms on one file
		db.SetMaxOpenConns(1)
	}
	if err = otelsql.RegisterDBStatsMetrics(db, otelsql.WithAttributes(attribute.String("db.system", driverName))); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to register database stats metrics")
	}

	s := &Store{
		db:             db,
		dialect:        params.Dialect,
		acquireTimeout: params.AcquireTimeout,
		queryTimeout:   params.QueryTimeout,
		matcher:        params.Matcher,
		clock:          params.Clock,
	}
	if err = s.migrateUp(); err != nil {
		return nil, multierr.Append(err, db.Close())
	}
	log.Ctx(ctx).Debug().Str("dialect", string(params.Dialect)).Msg("registry database ready")
	return s, nil
}

func driverFor(dialect Dialect, dsn string) (string, string, error) {
	switch dialect {
	case DialectPostgres:
		return "postgres", dsn, nil
	case DialectSQLite:
		if !strings.Contains(dsn, "?") {
			dsn += "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
		}
		return "sqlite", dsn, nil
	default:
		return "", "", genieerrors.New("unsupported database dialect %q", dialect).
			WithCode(genieerrors.ValidationError).
			WithComponent(errComponent)
	}
}

func (s *Store) migrateUp() error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return err
	}
	var driver database.Driver
	switch s.dialect {
	case DialectPostgres:
		driver, err = migratepostgres.WithInstance(s.db, &migratepostgres.Config{})
	case DialectSQLite:
		driver, err = migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	}
	if err != nil {
		return genieerrors.Wrap(err, "failed to prepare migrations").WithComponent(errComponent)
	}
	m, err := migrate.NewWithInstance("iofs", src, string(s.dialect), driver)
	if err != nil {
		return genieerrors.Wrap(err, "failed to prepare migrations").WithComponent(errComponent)
	}
	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return genieerrors.Wrap(err, "failed to apply migrations").WithComponent(errComponent)
	}
	return nil
}

func (s *Store) Close(_ context.Context) error {
	return s.db.Close()
}

// withConn acquires a pooled connection, bounded by the acquire timeout, and
// runs fn with a per statement deadline. Driver errors are classified so the
// retrying invoker can tell transient failures apart.
func (s *Store) withConn(ctx context.Context, op string, fn func(ctx context.Context, c SQLClient) error) error {
	acquireCtx, cancelAcquire := context.WithTimeout(ctx, s.acquireTimeout)
	conn, err := s.db.Conn(acquireCtx)
	cancelAcquire()
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return registry.NewTransientError(registry.ConnectionTimeout, op, err)
		}
		return s.classify(ctx, op, err)
	}
	defer conn.Close()

	queryCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	if err = fn(queryCtx, conn); err != nil {
		return s.classify(ctx, op, err)
	}
	return nil
}

// withTx is withConn inside a transaction.
func (s *Store) withTx(ctx context.Context, op string, fn func(ctx context.Context, tx SQLClient) error) error {
	return s.withConn(ctx, op, func(ctx context.Context, c SQLClient) (err error) {
		tx, err := c.(*sql.Conn).BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() {
			if err != nil {
				err = multierr.Append(err, ignoreDone(tx.Rollback()))
			}
		}()
		if err = fn(ctx, tx); err != nil {
			return err
		}
		return tx.Commit()
	})
}

func ignoreDone(err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

// rebind turns ? placeholders into $n for postgres.
func (s *Store) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) nowNano() int64 {
	return s.clock.Now().UTC().UnixNano()
}

func fromNano(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func wrapf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(a, err)...)
}

// compile-time check for interface implementation
var _ registry.Store = (*Store)(nil)
