// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-todo-sync/internal/adapter"
	"github.com/MKhiriev/go-todo-sync/internal/command"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/service"
	"github.com/MKhiriev/go-todo-sync/internal/store"
	"github.com/MKhiriev/go-todo-sync/models"
)

func statusErr(code int, body string) error {
	return fmt.Errorf("read sync: %w", &adapter.HTTPStatusError{StatusCode: code, Body: body})
}

var (
	batchErr = &service.BatchError{Failures: []service.OperationFailure{{
		UUID:  "u2",
		Type:  command.TypeItemComplete,
		Error: models.CommandError{ErrorCode: 22, Error: "Item not found"},
	}}}
	ambiguousErr = &service.AmbiguousOutcomeError{Missing: []service.MissingOperation{{
		UUID: "u3",
		Type: command.TypeItemClose,
	}}}
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Class
		code int
	}{
		{"nil", nil, ClassNone, ExitOK},
		{"transport", fmt.Errorf("%w: EOF", adapter.ErrTransport), ClassNothingChanged, ExitNothingChanged},
		{"http 429", statusErr(http.StatusTooManyRequests, ""), ClassNothingChanged, ExitNothingChanged},
		{"malformed", fmt.Errorf("%w: bad json", adapter.ErrMalformedResponse), ClassNothingChanged, ExitNothingChanged},
		{"batch", fmt.Errorf("write sync: %w", batchErr), ClassPartiallyApplied, ExitPartiallyApplied},
		{"ambiguous", ambiguousErr, ClassOutcomeUnknown, ExitOutcomeUnknown},
		{"batch and ambiguous", errors.Join(batchErr, ambiguousErr), ClassOutcomeUnknown, ExitOutcomeUnknown},
		{"unresolved placeholder", fmt.Errorf("%w: u1", service.ErrPlaceholderUnresolved), ClassOutcomeUnknown, ExitOutcomeUnknown},
		{"missing argument", fmt.Errorf("item_add: %w: content", command.ErrMissingArgument), ClassInvalidInput, ExitInvalidInput},
		{"usage", fmt.Errorf("%w: unknown command %q", ErrUsage, "frob"), ClassInvalidInput, ExitInvalidInput},
		{"task not found", service.ErrTaskNotFound, ClassInvalidInput, ExitInvalidInput},
		{"resource type", fmt.Errorf("%w: %q", models.ErrUnknownResourceType, "notes"), ClassInvalidInput, ExitInvalidInput},
		{"no token", fmt.Errorf("%w: %w", config.ErrInvalidAppConfigs, config.ErrTokenNotConfigured), ClassConfig, ExitConfig},
		{"bad storage", fmt.Errorf("%w: empty cache path", config.ErrInvalidStorageConfigs), ClassConfig, ExitConfig},
		{"global flags", fmt.Errorf("%w: unknown flag: --frob", config.ErrInvalidFlags), ClassInvalidInput, ExitInvalidInput},
		{"other", errors.New("boom"), ClassNothingChanged, ExitNothingChanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
			assert.Equal(t, tt.code, ExitCode(tt.err))
		})
	}
}

func TestMessage_HTTPStatus(t *testing.T) {
	tests := []struct {
		code int
		body string
		want string
	}{
		{http.StatusUnauthorized, "", MsgUnauthorized},
		{http.StatusForbidden, "", MsgForbidden},
		{http.StatusNotFound, "", MsgNotFound},
		{http.StatusTooManyRequests, `{"error":"slow down"}`, MsgRateLimited},
		{http.StatusInternalServerError, "", "Error: Todoist API returned HTTP 500."},
		{http.StatusBadGateway, "", "Error: Todoist API returned HTTP 502."},
		{http.StatusBadRequest, "invalid sync token", "Todoist API Error: invalid sync token"},
		{http.StatusBadRequest, "", "Error: Todoist API returned HTTP 400."},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, Message(statusErr(tt.code, tt.body)))
		})
	}
}

func TestMessage(t *testing.T) {
	dialErr := fmt.Errorf("%w: read request: %w", adapter.ErrTransport,
		&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})

	t.Run("config not found", func(t *testing.T) {
		msg := Message(fmt.Errorf("%w: %w", config.ErrInvalidAppConfigs, config.ErrTokenNotConfigured))
		assert.Contains(t, msg, "Configuration not found")
		assert.Contains(t, msg, "todosync init --api-token YOUR_TOKEN")
	})

	t.Run("config", func(t *testing.T) {
		msg := Message(fmt.Errorf("%w: negative cache ttl", config.ErrInvalidAppConfigs))
		assert.Equal(t, "Configuration Error: invalid app configuration: negative cache ttl", msg)
	})

	t.Run("connect hint", func(t *testing.T) {
		msg := Message(dialErr)
		assert.Contains(t, msg, MsgPrefixRequest)
		assert.Contains(t, msg, MsgConnectionHint)
	})

	t.Run("timeout has no connect hint", func(t *testing.T) {
		msg := Message(fmt.Errorf("%w: context deadline exceeded", adapter.ErrTransport))
		assert.Contains(t, msg, MsgPrefixRequest)
		assert.NotContains(t, msg, MsgConnectionHint)
	})

	t.Run("empty token", func(t *testing.T) {
		assert.Equal(t, MsgUnauthorized, Message(fmt.Errorf("%w: empty api token", adapter.ErrUnauthorized)))
	})

	t.Run("invalid input", func(t *testing.T) {
		msg := Message(fmt.Errorf("%w: content", command.ErrMissingArgument))
		assert.Equal(t, "Invalid Input: missing required argument: content", msg)
	})

	t.Run("malformed", func(t *testing.T) {
		assert.Contains(t, Message(fmt.Errorf("%w: x", adapter.ErrMalformedResponse)), MsgPrefixSerialize)
	})

	t.Run("corrupted cache", func(t *testing.T) {
		msg := Message(fmt.Errorf("load cache: %w", store.ErrCorruptedCache))
		assert.Contains(t, msg, MsgPrefixCache)
		assert.Contains(t, msg, MsgCorruptedCacheHint)
	})

	t.Run("partially applied", func(t *testing.T) {
		msg := Message(fmt.Errorf("write sync: %w", batchErr))
		assert.Contains(t, msg, MsgPrefixPartial)
		assert.Contains(t, msg, "u2")
		assert.Contains(t, msg, "Item not found")
	})

	t.Run("outcome unknown", func(t *testing.T) {
		msg := Message(errors.Join(batchErr, ambiguousErr))
		assert.Contains(t, msg, MsgPrefixOutcome)
		assert.Contains(t, msg, "u3")
		assert.Contains(t, msg, MsgOutcomeHint)
	})

	t.Run("nil", func(t *testing.T) {
		assert.Empty(t, Message(nil))
	})
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "partially_applied", ClassPartiallyApplied.String())
	assert.Equal(t, "class(42)", Class(42).String())
}
