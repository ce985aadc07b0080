// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter implements the wire protocol of the batch sync endpoint.
//
// The endpoint accepts form-encoded POST requests authenticated with a
// bearer credential. A read request carries a continuation token and the
// resource types of interest; a write request carries the continuation token
// and a JSON array of command envelopes. Both answer with a JSON document.
//
// Non-2xx answers become [*HTTPStatusError], which unwraps to a status
// sentinel such as [ErrRateLimited] so callers can use [errors.Is]. Failures
// before a status line is received wrap [ErrTransport]; undecodable 2xx
// bodies wrap [ErrMalformedResponse].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-todo-sync/internal/command"
	"github.com/MKhiriev/go-todo-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/sync_adapter_mock.go -package=mock

// SyncAdapter performs single round trips against the sync endpoint. It
// keeps no state between calls and never retries.
type SyncAdapter interface {
	// Read asks for the changes to kinds since token. FullSyncToken requests
	// the complete state.
	Read(ctx context.Context, token string, kinds []models.ResourceType) (models.ReadResponse, error)

	// Write submits envs as one batch, in order.
	Write(ctx context.Context, token string, envs []command.Envelope) (models.WriteResponse, error)
}
