package member

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"celebration/internal/adapters/storage"
	domain "celebration/internal/domain/member"
)

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

// newTestStore opens a migrated file-backed database.
func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "members.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, storage.Migrate(db))

	store := NewSQLiteStore(storage.NewTimedDB(db, nil, 0))
	store.now = func() time.Time { return fixedNow }
	return store
}

func newMockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewSQLiteStore(storage.NewTimedDB(db, nil, 0))
	store.now = func() time.Time { return fixedNow }
	return store, mock
}

func john() domain.Member {
	return domain.Member{FirstName: "John", LastName: "Smith", BirthDate: "1990-03-15", Country: "USA", City: "New York"}
}

func TestSQLiteStore_InsertAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Insert(ctx, john())
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, fixedNow, created.CreatedAt)

	got, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestSQLiteStore_Insert_AssignsIncreasingIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Insert(ctx, john())
	require.NoError(t, err)

	emma := domain.Member{FirstName: "Emma", LastName: "Johnson", BirthDate: "1985-07-22", Country: "UK", City: "London"}
	second, err := store.Insert(ctx, emma)
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestSQLiteStore_Insert_Duplicate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Insert(ctx, john())
	require.NoError(t, err)

	// Birth date is not part of the key.
	dup := john()
	dup.BirthDate = "1991-01-01"
	_, err = store.Insert(ctx, dup)

	var dupErr *domain.DuplicateError
	require.ErrorAs(t, err, &dupErr)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "Member with name 'John Smith' in New York, USA already exists", err.Error())

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSQLiteStore_Insert_SameNameOtherCity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Insert(ctx, john())
	require.NoError(t, err)

	other := john()
	other.City = "Boston"
	_, err = store.Insert(ctx, other)
	assert.NoError(t, err)
}

func TestSQLiteStore_GetByID_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStore_List(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	empty, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	names := []string{"Carol", "Alice", "Bob"}
	for _, name := range names {
		m := john()
		m.FirstName = name
		_, err := store.Insert(ctx, m)
		require.NoError(t, err)
	}

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, name := range names {
		assert.Equal(t, name, list[i].FirstName, "List should keep insertion order")
	}
}

func TestSQLiteStore_InsertIfAbsent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	inserted, err := store.InsertIfAbsent(ctx, john())
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = store.InsertIfAbsent(ctx, john())
	require.NoError(t, err)
	assert.False(t, inserted)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// TestSQLiteStore_ConcurrentInserts verifies parallel writers each get a distinct ID
// and only one of two identical keys wins.
func TestSQLiteStore_ConcurrentInserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m := john()
			if i%2 == 0 {
				m.City = "City" + string(rune('A'+i))
			}
			_, errs[i] = store.Insert(ctx, m)
		}(i)
	}
	wg.Wait()

	var conflicts int
	for _, err := range errs {
		if err == nil {
			continue
		}
		require.ErrorIs(t, err, domain.ErrConflict)
		conflicts++
	}
	// 5 distinct cities plus exactly one "New York" winner.
	assert.Equal(t, 4, conflicts)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 6)
	seen := map[int64]bool{}
	for _, m := range list {
		assert.False(t, seen[m.ID], "duplicate id %d", m.ID)
		seen[m.ID] = true
	}
}

func TestSQLiteStore_Insert_Mock(t *testing.T) {
	store, mock := newMockStore(t)
	m := john()

	mock.ExpectExec("INSERT INTO members").
		WithArgs(m.FirstName, m.LastName, m.BirthDate, m.Country, m.City, "2026-10-15T09:30:00Z").
		WillReturnResult(sqlmock.NewResult(42, 1))

	created, err := store.Insert(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_Insert_MockUniqueViolation(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO members").
		WillReturnError(errors.New("UNIQUE constraint failed: members.first_name, members.last_name, members.country, members.city"))

	_, err := store.Insert(context.Background(), john())
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_Insert_MockOtherError(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("disk I/O error")

	mock.ExpectExec("INSERT INTO members").WillReturnError(boom)

	_, err := store.Insert(context.Background(), john())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrConflict)
}

func TestSQLiteStore_GetByID_MockBadTimestamp(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "birth_date", "country", "city", "created_at"}).
		AddRow(1, "John", "Smith", "1990-03-15", "USA", "New York", "yesterday")
	mock.ExpectQuery(regexp.QuoteMeta(selectColumns + " WHERE id = ?")).WithArgs(int64(1)).WillReturnRows(rows)

	_, err := store.GetByID(context.Background(), 1)
	assert.ErrorContains(t, err, "bad created_at")
}

func TestSQLiteStore_Count_Mock(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM members")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}
