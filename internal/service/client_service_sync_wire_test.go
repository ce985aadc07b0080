// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-sync/internal/adapter"
	"github.com/MKhiriev/go-todo-sync/internal/command"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/store"
	"github.com/MKhiriev/go-todo-sync/internal/synctest"
	"github.com/MKhiriev/go-todo-sync/models"
)

const (
	wireToken     = "wire-test-token"
	wireCachePath = "/home/user/.config/todosync/cache.json"
)

type wireEnv struct {
	server *synctest.Server
	fs     afero.Fs
	cache  store.CacheStore
	engine SyncEngine
}

// newWireEnv: движок поверх настоящего адаптера, тестового сервера и файлового кэша в памяти
func newWireEnv(t *testing.T, opts ...EngineOption) *wireEnv {
	t.Helper()

	srv := synctest.NewServer(wireToken)
	t.Cleanup(srv.Close)

	syncAdapter, err := adapter.NewHTTPSyncAdapter(config.Adapter{SyncURL: srv.URL(), RequestTimeout: 5 * time.Second}, wireToken, logger.Nop())
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	cache := store.NewFileCacheStore(fs, wireCachePath, logger.Nop())

	return &wireEnv{
		server: srv,
		fs:     fs,
		cache:  cache,
		engine: NewSyncEngine(syncAdapter, cache, logger.Nop(), opts...),
	}
}

// кэша нет, ровно одно чтение, результат записан на диск,
// устаревшее поле checked превращается в is_completed
func TestWire_SyncWithCache_NoCacheFile(t *testing.T) {
	env := newWireEnv(t)
	ctx := context.Background()

	env.server.OnRead(func(req synctest.ReadRequest) synctest.Reply {
		return synctest.Reply{Raw: []byte(`{
			"sync_token": "tok-1",
			"full_sync": true,
			"items": [{"id": "t1", "content": "Legacy task", "checked": true, "child_order": 3}]
		}`)}
	})

	res, err := env.engine.SyncWithCache(ctx, itemsOnly)
	require.NoError(t, err)

	require.Len(t, res.Tasks, 1)
	assert.True(t, res.Tasks[0].IsCompleted)
	assert.Equal(t, int64(3), res.Tasks[0].Order)

	reqs := env.server.Requests()
	require.Len(t, reqs, 1)
	require.NotNil(t, reqs[0].Read)
	assert.Equal(t, models.FullSyncToken, reqs[0].Read.SyncToken)
	assert.Equal(t, []string{"items"}, reqs[0].Read.ResourceTypes)
	assert.Equal(t, "Bearer "+wireToken, reqs[0].Authorization)

	snap, err := env.cache.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "tok-1", snap.SyncToken)
	require.Len(t, snap.Data.Items, 1)

	// повторный вызов в окне свежести обходится без сети
	_, err = env.engine.SyncWithCache(ctx, itemsOnly)
	require.NoError(t, err)
	assert.Len(t, env.server.Requests(), 1)
}

// 429, ошибка ограничения частоты, токен и кэш на диске не тронуты
func TestWire_ReadSync_RateLimited(t *testing.T) {
	env := newWireEnv(t)
	ctx := context.Background()

	require.NoError(t, env.cache.Save(ctx, &models.CacheSnapshot{
		SyncToken: "tok-5",
		CachedAt:  time.Now().Unix(),
		Fetched:   projectsOnly,
		Data:      models.CacheData{Projects: []models.SyncProject{{ID: "p1", Name: "Inbox"}}},
	}))
	before, err := afero.ReadFile(env.fs, wireCachePath)
	require.NoError(t, err)

	env.server.OnRead(func(req synctest.ReadRequest) synctest.Reply {
		return synctest.Reply{Status: http.StatusTooManyRequests, Raw: []byte(`{"error":"Too many requests"}`)}
	})

	_, err = env.engine.ReadSync(ctx, projectsOnly)
	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrRateLimited)

	var statusErr *adapter.HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)

	reqs := env.server.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "tok-5", reqs[0].Read.SyncToken)

	assert.Equal(t, "tok-5", env.engine.Token())

	after, err := afero.ReadFile(env.fs, wireCachePath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

// по сети: создание и завершение в одном пакете
func TestWire_WriteSync_CreateAndComplete(t *testing.T) {
	env := newWireEnv(t)
	ctx := context.Background()

	env.server.OnWrite(func(req synctest.WriteRequest) synctest.Reply {
		return synctest.Reply{Body: synctest.OKWriteResponse(req, "tok-2")}
	})

	b := command.NewBuilder(nil)
	create, err := b.ItemAdd(command.ItemAddArgs{Content: "Buy milk"})
	require.NoError(t, err)
	complete, err := b.ItemComplete("t-9")
	require.NoError(t, err)

	res, err := env.engine.WriteSync(ctx, b.Build())
	require.NoError(t, err)

	id, ok := res.RealID(create)
	require.True(t, ok)
	assert.Equal(t, "real-"+create.TempID, id)
	assert.True(t, res.Applied(complete))
	assert.Equal(t, "tok-2", env.engine.Token())

	last := env.server.LastWrite()
	require.NotNil(t, last)
	require.Len(t, last.Commands, 2)
	assert.Equal(t, "item_add", last.Commands[0].Type)
	assert.Equal(t, create.UUID, last.Commands[0].UUID)
	assert.Equal(t, "item_complete", last.Commands[1].Type)
	assert.Empty(t, last.Commands[1].TempID)
}

func TestWire_TaskService_AddTaskThenRead(t *testing.T) {
	env := newWireEnv(t)
	ctx := context.Background()
	tasks := NewTaskService(env.engine, nil)

	_, err := tasks.GetProjects(ctx)
	require.NoError(t, err)

	id, err := tasks.AddTask(ctx, command.ItemAddArgs{Content: "Write report"})
	require.NoError(t, err)

	last := env.server.LastWrite()
	require.NotNil(t, last)
	assert.Equal(t, "real-"+last.Commands[0].TempID, id)

	// токен из записи используется следующим чтением
	_, err = env.engine.ReadSync(ctx, projectsOnly)
	require.NoError(t, err)

	reqs := env.server.Requests()
	require.Len(t, reqs, 3)
	require.NotNil(t, reqs[2].Read)
	assert.Equal(t, "write-token", reqs[2].Read.SyncToken)
}

// кэш на диске хранит только проекты: задачи запрашиваются полностью,
// даже из нового процесса и в окне свежести
func TestWire_SyncWithCache_NeverFetchedKindAcrossProcesses(t *testing.T) {
	env := newWireEnv(t)
	ctx := context.Background()

	env.server.OnRead(func(req synctest.ReadRequest) synctest.Reply {
		if req.SyncToken != models.FullSyncToken {
			return synctest.Reply{Body: models.ReadResponse{SyncToken: "delta"}}
		}
		return synctest.Reply{Raw: []byte(`{
			"sync_token": "tok-full",
			"full_sync": true,
			"projects": [{"id": "p1", "name": "Inbox"}],
			"items": [{"id": "t1", "content": "Buy milk", "project_id": "p1"}]
		}`)}
	})

	res, err := env.engine.SyncWithCache(ctx, projectsOnly)
	require.NoError(t, err)
	require.Len(t, res.Projects, 1)

	snap, err := env.cache.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, projectsOnly, snap.Fetched)
	assert.Empty(t, snap.Data.Items)

	// новый движок над тем же файлом
	syncAdapter, err := adapter.NewHTTPSyncAdapter(config.Adapter{SyncURL: env.server.URL(), RequestTimeout: 5 * time.Second}, wireToken, logger.Nop())
	require.NoError(t, err)
	next := NewSyncEngine(syncAdapter, env.cache, logger.Nop())

	res, err = next.SyncWithCache(ctx, itemsOnly)
	require.NoError(t, err)
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, "Buy milk", res.Tasks[0].Content)

	reqs := env.server.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, models.FullSyncToken, reqs[1].Read.SyncToken)
	assert.Equal(t, []string{"items"}, reqs[1].Read.ResourceTypes)

	snap, err = env.cache.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.ResourceType{models.ResourceProjects, models.ResourceItems}, snap.Fetched)
	assert.Len(t, snap.Data.Projects, 1)
	assert.Len(t, snap.Data.Items, 1)

	// теперь оба раздела покрыты: сеть не нужна
	_, err = next.SyncWithCache(ctx, []models.ResourceType{models.ResourceItems, models.ResourceProjects})
	require.NoError(t, err)
	assert.Len(t, env.server.Requests(), 2)
}

func TestWire_ReadSync_CancelledContextKeepsState(t *testing.T) {
	env := newWireEnv(t)

	env.server.OnRead(func(req synctest.ReadRequest) synctest.Reply {
		return synctest.Reply{Body: models.ReadResponse{SyncToken: "never"}, Delay: time.Second}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := env.engine.ReadSync(ctx, projectsOnly)
	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrTransport)
	assert.Empty(t, env.engine.Token())

	exists, err := env.cache.Exists(context.Background())
	require.NoError(t, err)
	assert.False(t, exists)
}

// запрос на запись мог дойти до сервера: исход неизвестен, токен не меняется
func TestWire_WriteSync_TimeoutIsAmbiguous(t *testing.T) {
	env := newWireEnv(t)

	env.server.OnWrite(func(req synctest.WriteRequest) synctest.Reply {
		return synctest.Reply{Body: synctest.OKWriteResponse(req, "late"), Delay: time.Second}
	})

	b := command.NewBuilder(nil)
	env1, err := b.ItemComplete("t-1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	res, err := env.engine.WriteSync(ctx, b.Build())
	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrTransport)

	var ambiguous *AmbiguousOutcomeError
	require.ErrorAs(t, err, &ambiguous)
	require.Len(t, ambiguous.Missing, 1)
	assert.Equal(t, env1.UUID, ambiguous.Missing[0].UUID)

	assert.Nil(t, res.Outcomes)
	assert.Empty(t, env.engine.Token())
}
