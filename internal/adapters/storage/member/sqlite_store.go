package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"celebration/internal/adapters/storage"
	domain "celebration/internal/domain/member"
)

const selectColumns = "SELECT id, first_name, last_name, birth_date, country, city, created_at FROM members"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db  storage.SQLDB
	now func() time.Time
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new member store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// Insert persists a new member and returns it with ID and CreatedAt assigned.
// PRE: value has been normalized and validated
// POST: Row persisted; returns *domain.DuplicateError if the name/location key exists
func (s *SQLiteStore) Insert(ctx context.Context, value domain.Member) (domain.Member, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return domain.Member{}, err
	}
	defer conn.Close()

	value.CreatedAt = s.now().UTC().Truncate(time.Second)
	result, err := conn.ExecContext(ctx,
		"INSERT INTO members (first_name, last_name, birth_date, country, city, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		value.FirstName,
		value.LastName,
		value.BirthDate,
		value.Country,
		value.City,
		value.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Member{}, value.Duplicate()
		}
		return domain.Member{}, fmt.Errorf("insert member: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Member{}, fmt.Errorf("insert member: %w", err)
	}
	value.ID = id
	return value, nil
}

// InsertIfAbsent inserts the member unless its name/location key is already taken.
// PRE: value has been normalized and validated
// POST: Returns true when a row was written, false when it already existed
func (s *SQLiteStore) InsertIfAbsent(ctx context.Context, value domain.Member) (bool, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx,
		"INSERT OR IGNORE INTO members (first_name, last_name, birth_date, country, city, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		value.FirstName,
		value.LastName,
		value.BirthDate,
		value.Country,
		value.City,
		s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("seed member: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("seed member: %w", err)
	}
	return n > 0, nil
}

// GetByID retrieves a Member by its ID.
// PRE: none
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Member, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return domain.Member{}, err
	}
	defer conn.Close()

	entity, err := scanMember(conn.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Member{}, domain.ErrNotFound
	}
	return entity, err
}

// List returns every member in insertion order.
// PRE: none
// POST: Returns a possibly empty slice, never nil
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Member, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, selectColumns+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Member{}
	for rows.Next() {
		entity, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the number of stored members.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	var n int
	err = conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM members").Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMember(row scanner) (domain.Member, error) {
	var entity domain.Member
	var createdAt string
	if err := row.Scan(
		&entity.ID,
		&entity.FirstName,
		&entity.LastName,
		&entity.BirthDate,
		&entity.Country,
		&entity.City,
		&createdAt,
	); err != nil {
		return domain.Member{}, err
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return domain.Member{}, fmt.Errorf("member %d: bad created_at %q: %w", entity.ID, createdAt, err)
	}
	entity.CreatedAt = t
	return entity, nil
}

// isUniqueViolation reports whether err came from the members unique key.
func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE"))
	}
	// Drivers that do not expose result codes.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
