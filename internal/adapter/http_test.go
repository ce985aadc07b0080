// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-sync/internal/command"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/synctest"
	"github.com/MKhiriev/go-todo-sync/models"
)

const testToken = "test-api-token"

// newTestAdapter создаёт httpSyncAdapter, направленный на тестовый сервер
func newTestAdapter(t *testing.T, syncURL string, timeout time.Duration) SyncAdapter {
	t.Helper()
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	a, err := NewHTTPSyncAdapter(config.Adapter{SyncURL: syncURL, RequestTimeout: timeout}, testToken, logger.Nop())
	require.NoError(t, err)
	return a
}

func newFake(t *testing.T) *synctest.Server {
	t.Helper()
	s := synctest.NewServer(testToken)
	t.Cleanup(s.Close)
	return s
}

// ── constructor ─────────────────────────────────────────────────────────────

func TestNewHTTPSyncAdapter_Validation(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		token string
	}{
		{"empty url", "", testToken},
		{"no scheme", "api.todoist.com/api/v1/sync", testToken},
		{"bad scheme", "ftp://example.com/sync", testToken},
		{"empty token", "https://example.com/sync", "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHTTPSyncAdapter(config.Adapter{SyncURL: tt.url}, tt.token, nil)
			assert.Error(t, err)
		})
	}
}

// ── Read ────────────────────────────────────────────────────────────────────

func TestRead_SendsFormAndDecodes(t *testing.T) {
	srv := newFake(t)
	srv.OnRead(func(req synctest.ReadRequest) synctest.Reply {
		return synctest.Reply{Raw: []byte(`{
			"sync_token": "tok-2",
			"full_sync": true,
			"items": [{"id": "T1", "content": "Buy milk", "checked": false}],
			"projects": [{"id": "P1", "name": "Inbox"}]
		}`)}
	})

	a := newTestAdapter(t, srv.URL(), 0)
	resp, err := a.Read(context.Background(), models.FullSyncToken,
		[]models.ResourceType{models.ResourceItems, models.ResourceProjects})
	require.NoError(t, err)

	assert.Equal(t, "tok-2", resp.SyncToken)
	assert.True(t, resp.FullSync)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Buy milk", resp.Items[0].Content)
	require.Len(t, resp.Projects, 1)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	require.NotNil(t, reqs[0].Read)
	assert.Equal(t, "*", reqs[0].Read.SyncToken)
	assert.Equal(t, []string{"items", "projects"}, reqs[0].Read.ResourceTypes)
	assert.Equal(t, "Bearer "+testToken, reqs[0].Authorization)
	assert.Contains(t, reqs[0].ContentType, "application/x-www-form-urlencoded")
}

func TestRead_StatusErrors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusInternalServerError, ErrServerError},
		{http.StatusServiceUnavailable, ErrServerError},
		{http.StatusConflict, ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := newFake(t)
			srv.OnRead(func(synctest.ReadRequest) synctest.Reply {
				// a JSON body on an error status must not be mistaken for success
				return synctest.Reply{Status: tt.status, Raw: []byte(`{"sync_token":"ignored"}`)}
			})

			_, err := newTestAdapter(t, srv.URL(), 0).Read(context.Background(), "*",
				[]models.ResourceType{models.ResourceAll})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var statusErr *HTTPStatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Equal(t, `{"sync_token":"ignored"}`, statusErr.Body)
		})
	}
}

func TestRead_Unauthorized(t *testing.T) {
	srv := newFake(t)

	a, err := NewHTTPSyncAdapter(config.Adapter{SyncURL: srv.URL(), RequestTimeout: time.Second}, "wrong", nil)
	require.NoError(t, err)

	_, err = a.Read(context.Background(), "*", []models.ResourceType{models.ResourceItems})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRead_MalformedBody(t *testing.T) {
	srv := newFake(t)
	srv.OnRead(func(synctest.ReadRequest) synctest.Reply {
		return synctest.Reply{Raw: []byte(`<html>maintenance</html>`)}
	})

	_, err := newTestAdapter(t, srv.URL(), 0).Read(context.Background(), "*", nil)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestRead_Timeout(t *testing.T) {
	srv := newFake(t)
	srv.OnRead(func(synctest.ReadRequest) synctest.Reply {
		return synctest.Reply{Delay: time.Second, Body: models.ReadResponse{SyncToken: "late"}}
	})

	_, err := newTestAdapter(t, srv.URL(), 50*time.Millisecond).Read(context.Background(), "*", nil)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestRead_ContextCancelled(t *testing.T) {
	srv := newFake(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestAdapter(t, srv.URL(), 0).Read(ctx, "*", nil)
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRead_ConnectionRefused(t *testing.T) {
	srv := synctest.NewServer(testToken)
	url := srv.URL()
	srv.Close()

	_, err := newTestAdapter(t, url, 0).Read(context.Background(), "*", nil)
	assert.ErrorIs(t, err, ErrTransport)
}

// ── Write ───────────────────────────────────────────────────────────────────

func TestWrite_SendsCommandsAndDecodesStatuses(t *testing.T) {
	srv := newFake(t)
	srv.OnWrite(func(req synctest.WriteRequest) synctest.Reply {
		return synctest.Reply{Raw: []byte(`{
			"sync_token": "tok-3",
			"sync_status": {
				"` + req.Commands[0].UUID + `": "ok",
				"` + req.Commands[1].UUID + `": {"error_code": 22, "error": "Item not found", "error_tag": "ITEM_NOT_FOUND", "http_code": 404}
			},
			"temp_id_mapping": {"` + req.Commands[0].TempID + `": "6X7rM8997g3RQmvh"}
		}`)}
	})

	b := command.NewBuilder(nil)
	add, err := b.ItemAdd(command.ItemAddArgs{Content: "Buy milk"})
	require.NoError(t, err)
	closeEnv, err := b.ItemClose("missing")
	require.NoError(t, err)

	resp, err := newTestAdapter(t, srv.URL(), 0).Write(context.Background(), "tok-2", b.Build())
	require.NoError(t, err)

	assert.Equal(t, "tok-3", resp.SyncToken)
	assert.True(t, resp.SyncStatus[add.UUID].OK)
	st := resp.SyncStatus[closeEnv.UUID]
	assert.False(t, st.OK)
	require.NotNil(t, st.Error)
	assert.Equal(t, 22, st.Error.ErrorCode)
	assert.Equal(t, "ITEM_NOT_FOUND", st.Error.ErrorTag)
	assert.Equal(t, "6X7rM8997g3RQmvh", resp.TempIDMapping[add.TempID])

	w := srv.LastWrite()
	require.NotNil(t, w)
	assert.Equal(t, "tok-2", w.SyncToken)
	require.Len(t, w.Commands, 2)
	assert.Equal(t, "item_add", w.Commands[0].Type)
	assert.Equal(t, add.UUID, w.Commands[0].UUID)
	assert.JSONEq(t, `{"content":"Buy milk"}`, string(w.Commands[0].Args))
	assert.Equal(t, "item_close", w.Commands[1].Type)
	assert.Empty(t, w.Commands[1].TempID)
}

func TestWrite_OmitsEmptySyncToken(t *testing.T) {
	srv := newFake(t)

	b := command.NewBuilder(nil)
	_, err := b.LabelDelete("L1")
	require.NoError(t, err)

	_, err = newTestAdapter(t, srv.URL(), 0).Write(context.Background(), "", b.Build())
	require.NoError(t, err)

	w := srv.LastWrite()
	require.NotNil(t, w)
	assert.Empty(t, w.SyncToken)
}

func TestWrite_RateLimited(t *testing.T) {
	srv := newFake(t)
	srv.OnWrite(func(synctest.WriteRequest) synctest.Reply {
		return synctest.Reply{Status: http.StatusTooManyRequests, Raw: []byte("slow down")}
	})

	b := command.NewBuilder(nil)
	_, err := b.ItemComplete("T1")
	require.NoError(t, err)

	_, err = newTestAdapter(t, srv.URL(), 0).Write(context.Background(), "tok", b.Build())
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Contains(t, err.Error(), "slow down")
}

func TestWrite_MalformedBody(t *testing.T) {
	srv := newFake(t)
	srv.OnWrite(func(synctest.WriteRequest) synctest.Reply {
		return synctest.Reply{Raw: []byte(`{"sync_status": [1,2,3]}`)}
	})

	b := command.NewBuilder(nil)
	_, err := b.ItemComplete("T1")
	require.NoError(t, err)

	_, err = newTestAdapter(t, srv.URL(), 0).Write(context.Background(), "tok", b.Build())
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

// ── HTTPStatusError ─────────────────────────────────────────────────────────

func TestHTTPStatusError_Message(t *testing.T) {
	assert.Equal(t, "http 404: Not Found", (&HTTPStatusError{StatusCode: 404}).Error())
	assert.Equal(t, "http 500: boom", (&HTTPStatusError{StatusCode: 500, Body: "boom"}).Error())
}
