package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-sync/models"
)

const cachePath = "/home/user/.config/todosync/cache.json"

func sampleSnapshot() *models.CacheSnapshot {
	return &models.CacheSnapshot{
		SyncToken: "tok-1",
		CachedAt:  1_700_000_000,
		Fetched:   []models.ResourceType{models.ResourceProjects, models.ResourceItems},
		Data: models.CacheData{
			Projects: []models.SyncProject{{ID: "P1", Name: "Inbox"}},
			Items:    []models.SyncTask{{ID: "T1", Content: "Buy milk"}},
		},
	}
}

func TestFileCacheStore_LoadMissing(t *testing.T) {
	s := NewFileCacheStore(afero.NewMemMapFs(), cachePath, nil)

	snap, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)

	ok, err := s.Exists(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileCacheStore_SaveLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewFileCacheStore(fsys, cachePath, nil)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleSnapshot()))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), got)

	info, err := fsys.Stat(cachePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dirInfo, err := fsys.Stat(filepath.Dir(cachePath))
	require.NoError(t, err)
	assert.True(t, dirInfo.IsDir())

	// no temporary files left next to the cache
	entries, err := afero.ReadDir(fsys, filepath.Dir(cachePath))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cache.json", entries[0].Name())
}

func TestFileCacheStore_PersistedLayout(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewFileCacheStore(fsys, cachePath, nil)
	require.NoError(t, s.Save(context.Background(), sampleSnapshot()))

	raw, err := afero.ReadFile(fsys, cachePath)
	require.NoError(t, err)

	text := string(raw)
	for _, key := range []string{`"sync_token"`, `"cached_at"`, `"fetched"`, `"data"`, `"projects"`, `"items"`} {
		assert.True(t, strings.Contains(text, key), "missing %s in %s", key, text)
	}
}

func TestFileCacheStore_SaveReplaces(t *testing.T) {
	s := NewFileCacheStore(afero.NewMemMapFs(), cachePath, nil)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleSnapshot()))

	next := &models.CacheSnapshot{SyncToken: "tok-2", CachedAt: 1_700_000_100}
	require.NoError(t, s.Save(ctx, next))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got.SyncToken)
	assert.Empty(t, got.Data.Items)
}

func TestFileCacheStore_Corrupted(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(filepath.Dir(cachePath), 0o700))
	require.NoError(t, afero.WriteFile(fsys, cachePath, []byte(`{"sync_token": "tok", "data": {"items": [`), 0o600))

	s := NewFileCacheStore(fsys, cachePath, nil)

	snap, err := s.Load(context.Background())
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, ErrCorruptedCache)
}

func TestFileCacheStore_ClearIdempotent(t *testing.T) {
	s := NewFileCacheStore(afero.NewMemMapFs(), cachePath, nil)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleSnapshot()))
	require.NoError(t, s.Clear(ctx))

	snap, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)

	// clearing twice is not an error
	require.NoError(t, s.Clear(ctx))
}

func TestFileCacheStore_SaveNil(t *testing.T) {
	s := NewFileCacheStore(afero.NewMemMapFs(), cachePath, nil)
	assert.ErrorIs(t, s.Save(context.Background(), nil), ErrNilSnapshot)
}

func TestFileCacheStore_ReadOnlyFs(t *testing.T) {
	base := afero.NewMemMapFs()
	s := NewFileCacheStore(afero.NewReadOnlyFs(base), cachePath, nil)

	err := s.Save(context.Background(), sampleSnapshot())
	assert.Error(t, err)

	exists, err := afero.Exists(base, cachePath)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFileCacheStore_CancelledContext(t *testing.T) {
	s := NewFileCacheStore(afero.NewMemMapFs(), cachePath, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Save(ctx, sampleSnapshot()), context.Canceled)
}
