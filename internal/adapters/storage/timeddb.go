package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"celebration/internal/adapters/http/perf"
)

// Conn is a single connection checked out of the pool for the duration of one
// store operation. Callers must Close it on every path to return it to the pool.
// *sql.Conn satisfies this interface.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Close() error
}

// Compile-time check that *sql.Conn satisfies Conn.
var _ Conn = (*sql.Conn)(nil)

// SQLDB is the database interface used by all stores.
type SQLDB interface {
	Conn(ctx context.Context) (Conn, error)
}

// DefaultSlowQueryMs is the default threshold for slow query warnings.
const DefaultSlowQueryMs = 50

// TimedDB wraps a *sql.DB to log slow queries and optionally record to a collector.
// Satisfies the SQLDB interface so it can be passed to any store constructor.
type TimedDB struct {
	db        *sql.DB
	collector *perf.Collector
	threshold float64
}

// Compile-time check that *TimedDB satisfies SQLDB.
var _ SQLDB = (*TimedDB)(nil)

// NewTimedDB wraps a *sql.DB with timing instrumentation.
// PRE: db is a valid database connection; collector may be nil; slowQueryMs <= 0 selects the default
// POST: Returns a TimedDB that logs slow queries and records to collector
func NewTimedDB(db *sql.DB, collector *perf.Collector, slowQueryMs int) *TimedDB {
	if slowQueryMs <= 0 {
		slowQueryMs = DefaultSlowQueryMs
	}
	return &TimedDB{
		db:        db,
		collector: collector,
		threshold: float64(slowQueryMs),
	}
}

// Conn checks a dedicated connection out of the pool.
// PRE: ctx is valid
// POST: returns a timed connection the caller must Close, or an error
func (t *TimedDB) Conn(ctx context.Context) (Conn, error) {
	start := time.Now()
	c, err := t.db.Conn(ctx)
	t.logQuery("conn", start, err)
	if err != nil {
		return nil, err
	}
	return &timedConn{conn: c, parent: t}, nil
}

// logQuery logs and optionally records a query timing under op.
func (t *TimedDB) logQuery(op string, start time.Time, err error) {
	durationMs := float64(time.Since(start).Microseconds()) / 1000.0

	level := slog.LevelDebug
	msg := "query"
	if durationMs >= t.threshold {
		level, msg = slog.LevelWarn, "slow_query"
	}
	slog.Log(context.Background(), level, msg,
		"op", op,
		"duration_ms", durationMs,
		"failed", err != nil,
	)

	if t.collector != nil {
		t.collector.Record(perf.Entry{
			Kind:       perf.KindQuery,
			Path:       op,
			DurationMs: durationMs,
			Timestamp:  start,
		})
	}
}

// Close closes the underlying database connection.
// PRE: none
// POST: database connection closed
func (t *TimedDB) Close() error {
	return t.db.Close()
}

// Ping verifies the database connection.
// PRE: none
// POST: returns nil if connection is alive
func (t *TimedDB) Ping(ctx context.Context) error {
	return t.db.PingContext(ctx)
}

// timedConn records every statement run on a checked-out connection.
type timedConn struct {
	conn   *sql.Conn
	parent *TimedDB
}

// ExecContext runs a statement and records it as "exec <VERB>".
func (c *timedConn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := c.conn.ExecContext(ctx, query, args...)
	c.parent.logQuery("exec "+statementVerb(query), start, err)
	return result, err
}

// QueryContext runs a query and records it as "query <VERB>".
func (c *timedConn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := c.conn.QueryContext(ctx, query, args...)
	c.parent.logQuery("query "+statementVerb(query), start, err)
	return rows, err
}

// QueryRowContext runs a single-row query. Errors surface at Scan, so none is logged here.
func (c *timedConn) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := c.conn.QueryRowContext(ctx, query, args...)
	c.parent.logQuery("query_row "+statementVerb(query), start, nil)
	return row
}

// Close returns the connection to the pool.
func (c *timedConn) Close() error {
	return c.conn.Close()
}

// statementVerb returns the upper-cased leading keyword of a statement, e.g. "SELECT".
// Only the verb is recorded, never SQL text or arguments.
func statementVerb(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "EMPTY"
	}
	return strings.ToUpper(fields[0])
}
