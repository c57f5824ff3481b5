//go:build unit || !integration

package sqlstore

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"

	"github.com/genie-oss/genie/pkg/models/criteria"
	"github.com/genie-oss/genie/pkg/registry"
	"github.com/genie-oss/genie/pkg/registry/registrytest"
)

type SQLiteStoreTestSuite struct {
	registrytest.StoreSuite
	clock *clock.Mock
}

func TestSQLiteStoreTestSuite(t *testing.T) {
	s := new(SQLiteStoreTestSuite)
	s.NewStore = func() registry.Store {
		s.clock = clock.NewMock()
		s.clock.Set(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		store, err := Open(context.Background(), Params{
			Dialect: DialectSQLite,
			DSN:     filepath.Join(s.T().TempDir(), "registry.db"),
			Matcher: criteria.NewMatcher(),
			Clock:   s.clock,
		})
		s.Require().NoError(err)
		return store
	}
	s.Advance = func(d time.Duration) { s.clock.Add(d) }
	suite.Run(t, s)
}

func (s *SQLiteStoreTestSuite) TestReopenKeepsData() {
	path := filepath.Join(s.T().TempDir(), "reopen.db")
	first, err := Open(s.Ctx, Params{Dialect: DialectSQLite, DSN: path, Clock: s.clock})
	s.Require().NoError(err)
	s.Require().NoError(registrytest.Fixture().Apply(s.Ctx, first))
	s.Require().NoError(first.Close(s.Ctx))

	second, err := Open(s.Ctx, Params{Dialect: DialectSQLite, DSN: path, Clock: s.clock})
	s.Require().NoError(err)
	defer second.Close(s.Ctx)
	apps, err := second.GetApplicationsForCommand(s.Ctx, "hive")
	s.Require().NoError(err)
	s.Len(apps, 2)
}

func TestOpenRejectsUnknownDialect(t *testing.T) {
	_, err := Open(context.Background(), Params{Dialect: "mysql", DSN: "x"})
	if err == nil {
		t.Fatal("expected error for unknown dialect")
	}
}

func TestRebind(t *testing.T) {
	pg := &Store{dialect: DialectPostgres}
	lite := &Store{dialect: DialectSQLite}
	query := `SELECT 1 FROM jobs WHERE id = ? AND status IN (?,?)`
	if got := pg.rebind(query); got != `SELECT 1 FROM jobs WHERE id = $1 AND status IN ($2,$3)` {
		t.Fatalf("unexpected postgres query: %s", got)
	}
	if got := lite.rebind(query); got != query {
		t.Fatalf("sqlite query should be unchanged: %s", got)
	}
}

func TestClassify(t *testing.T) {
	s := &Store{}
	live := context.Background()
	done, cancel := context.WithCancel(context.Background())
	cancel()

	testCases := []struct {
		name     string
		ctx      context.Context
		err      error
		kind     registry.TransientKind
		expected bool
	}{
		{"deadlock", live, &pq.Error{Code: pgerrcode.DeadlockDetected}, registry.LockContention, true},
		{"lock not available", live, &pq.Error{Code: pgerrcode.LockNotAvailable}, registry.LockContention, true},
		{"serialization", live, &pq.Error{Code: pgerrcode.SerializationFailure}, registry.OptimisticLock, true},
		{"statement timeout", live, &pq.Error{Code: pgerrcode.QueryCanceled}, registry.QueryTimeout, true},
		{"too many connections", live, &pq.Error{Code: pgerrcode.TooManyConnections}, registry.ConnectionTimeout, true},
		{"unique violation", live, &pq.Error{Code: pgerrcode.UniqueViolation}, "", false},
		{"bad conn", live, fmt.Errorf("query: %w", driver.ErrBadConn), registry.ConnectionTimeout, true},
		{"query deadline", live, context.DeadlineExceeded, registry.QueryTimeout, true},
		{"caller cancelled", done, context.DeadlineExceeded, "", false},
		{"plain", live, errors.New("syntax error"), "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kind, ok := registry.TransientKindOf(s.classify(tc.ctx, "op", tc.err))
			if ok != tc.expected || kind != tc.kind {
				t.Fatalf("expected (%q, %v), got (%q, %v)", tc.kind, tc.expected, kind, ok)
			}
		})
	}
}
