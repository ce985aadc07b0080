package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/models"
)

func newMockStore(t *testing.T) (CacheStore, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewSQLiteCacheStore(&DB{DB: conn, logger: logger.Nop()}, logger.Nop()), mock
}

var (
	selectMeta     = regexp.QuoteMeta("SELECT sync_token, cached_at FROM cache_meta WHERE id = ?")
	selectSections = regexp.QuoteMeta("SELECT kind, payload, fetched FROM cache_sections")
)

// ── Load ────────────────────────────────────────────────────────────────────

func TestSQLiteCacheStore_LoadEmpty(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(selectMeta).WithArgs(1).WillReturnError(sql.ErrNoRows)

	snap, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteCacheStore_Load(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(selectMeta).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"sync_token", "cached_at"}).AddRow("tok-9", int64(1234)))
	mock.ExpectQuery(selectSections).
		WillReturnRows(sqlmock.NewRows([]string{"kind", "payload", "fetched"}).
			AddRow("items", `[{"id":"T1","content":"Buy milk"}]`, true).
			AddRow("projects", `[]`, true).
			AddRow("labels", `[]`, false).
			AddRow("reminders", `[{"id":"R1"}]`, true))

	snap, err := s.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, "tok-9", snap.SyncToken)
	assert.Equal(t, int64(1234), snap.CachedAt)
	require.Len(t, snap.Data.Items, 1)
	assert.Equal(t, "Buy milk", snap.Data.Items[0].Content)
	assert.Empty(t, snap.Data.Projects)
	// порядок разделов как в AllResourceTypes, незнакомые отброшены
	assert.Equal(t, []models.ResourceType{models.ResourceProjects, models.ResourceItems}, snap.Fetched)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteCacheStore_LoadCorrupted(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(selectMeta).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"sync_token", "cached_at"}).AddRow("tok", int64(1)))
	mock.ExpectQuery(selectSections).
		WillReturnRows(sqlmock.NewRows([]string{"kind", "payload", "fetched"}).AddRow("labels", `[{"id":`, true))

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrCorruptedCache)
}

func TestSQLiteCacheStore_LoadDBError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(selectMeta).WillReturnError(errors.New("disk I/O error"))

	_, err := s.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCorruptedCache)
}

// ── Save ────────────────────────────────────────────────────────────────────

func TestSQLiteCacheStore_Save(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("REPLACE INTO cache_meta").
		WithArgs(1, "tok-1", int64(1_700_000_000)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("REPLACE INTO cache_sections").
		WithArgs(
			"projects", sqlmock.AnyArg(), true,
			"items", sqlmock.AnyArg(), true,
			"sections", "[]", false,
			"labels", "[]", false,
			"filters", "[]", false,
		).
		WillReturnResult(sqlmock.NewResult(5, 5))
	mock.ExpectCommit()

	require.NoError(t, s.Save(context.Background(), sampleSnapshot()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteCacheStore_SaveRollsBack(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("REPLACE INTO cache_meta").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("REPLACE INTO cache_sections").WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	err := s.Save(context.Background(), sampleSnapshot())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── Clear / Exists ──────────────────────────────────────────────────────────

func TestSQLiteCacheStore_Clear(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM cache_sections").WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec("DELETE FROM cache_meta").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.Clear(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteCacheStore_Exists(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM cache_meta")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := s.Exists(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

// ── real database ───────────────────────────────────────────────────────────

func TestSQLiteCacheStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "nested", "cache.db")

	db, err := NewConnectSQLite(ctx, dsn, logger.Nop())
	if err != nil && strings.Contains(err.Error(), "CGO_ENABLED") {
		t.Skip("sqlite3 driver needs cgo")
	}
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx))

	s := NewSQLiteCacheStore(db, logger.Nop())
	defer s.Close()

	snap, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)

	require.NoError(t, s.Save(ctx, sampleSnapshot()))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tok-1", got.SyncToken)
	assert.Equal(t, sampleSnapshot().Data.Items, got.Data.Items)
	assert.Equal(t, sampleSnapshot().Data.Projects, got.Data.Projects)
	assert.Equal(t, []models.SyncLabel{}, got.Data.Labels)
	assert.Equal(t, sampleSnapshot().Fetched, got.Fetched)

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	ok, err := s.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
