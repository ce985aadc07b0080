// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the sync engine and the task operations built
// on top of it.
//
// The engine owns the continuation token and the in-memory cache snapshot.
// Reads replace cache sections wholesale and persist the result; writes
// submit one ordered batch of command envelopes and report the outcome of
// every envelope. Neither path retries, and neither mutates state when the
// round trip itself fails.
package service

import (
	"context"

	"github.com/MKhiriev/go-todo-sync/internal/command"
	"github.com/MKhiriev/go-todo-sync/models"
)

// SyncEngine drives the batch sync protocol for one credential.
//
// Implementations serialize round trips internally; callers should still
// sequence dependent writes themselves.
type SyncEngine interface {
	// ReadSync sends the held continuation token ("*" when none is held) and
	// replaces the cache sections for kinds with the response. On success the
	// new snapshot is persisted before ReadSync returns. On any round trip
	// failure the token and the snapshot are left untouched.
	ReadSync(ctx context.Context, kinds []models.ResourceType) (models.Resources, error)

	// WriteSync submits envs as one batch. The token advances whenever the
	// server answered with a parseable 2xx body, even if some envelopes
	// failed. The returned WriteResult is populated in that case even when
	// the error is non-nil; see BatchError and AmbiguousOutcomeError.
	WriteSync(ctx context.Context, envs []command.Envelope) (WriteResult, error)

	// SyncWithCache returns the cached records for kinds while the snapshot
	// is fresh and a token is held; otherwise it performs ReadSync.
	SyncWithCache(ctx context.Context, kinds []models.ResourceType) (models.Resources, error)

	// FullSync requests the complete state for kinds regardless of the held
	// token and rebuilds the snapshot from scratch.
	FullSync(ctx context.Context, kinds []models.ResourceType) (models.Resources, error)

	// Token returns the held continuation token, or "" when none is held.
	Token() string

	// Reset forgets the held token and the in-memory snapshot. The persisted
	// cache is not touched and is not re-read afterwards.
	Reset()

	// CacheStatus describes the persisted snapshot.
	CacheStatus(ctx context.Context) (CacheStatus, error)

	// ClearCache removes the persisted snapshot and resets the engine.
	// Clearing an empty cache succeeds.
	ClearCache(ctx context.Context) error
}

// TaskService exposes one method per resource operation. Arguments are
// primitives or the command argument structs; results are canonical
// records. Get operations go through SyncEngine.SyncWithCache; every
// mutation is a single-envelope WriteSync.
type TaskService interface {
	// GetTasks returns every open or completed task. A non-empty query keeps
	// only tasks whose content or project name contains it, ignoring case.
	GetTasks(ctx context.Context, query string) ([]models.Task, error)
	GetTask(ctx context.Context, id string) (models.Task, error)
	GetProjects(ctx context.Context) ([]models.Project, error)
	// GetSections returns the sections of projectID, or all sections when
	// projectID is empty.
	GetSections(ctx context.Context, projectID string) ([]models.Section, error)
	GetLabels(ctx context.Context) ([]models.Label, error)
	GetFilters(ctx context.Context) ([]models.Filter, error)

	// AddTask returns the id the server assigned to the new task.
	AddTask(ctx context.Context, args command.ItemAddArgs) (string, error)
	UpdateTask(ctx context.Context, args command.ItemUpdateArgs) error
	CompleteTask(ctx context.Context, id string) error
	CloseTask(ctx context.Context, id string) error
	ReopenTask(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error
	MoveTask(ctx context.Context, args command.ItemMoveArgs) error

	AddProject(ctx context.Context, args command.ProjectAddArgs) (string, error)
	UpdateProject(ctx context.Context, args command.ProjectUpdateArgs) error
	DeleteProject(ctx context.Context, id string) error

	AddSection(ctx context.Context, args command.SectionAddArgs) (string, error)
	UpdateSection(ctx context.Context, args command.SectionUpdateArgs) error
	DeleteSection(ctx context.Context, id string) error
	ArchiveSection(ctx context.Context, id string) error
	UnarchiveSection(ctx context.Context, id string) error
	MoveSection(ctx context.Context, id, projectID string) error
	ReorderSections(ctx context.Context, entries []command.OrderEntry) error

	AddLabel(ctx context.Context, args command.LabelAddArgs) (string, error)
	UpdateLabel(ctx context.Context, args command.LabelUpdateArgs) error
	DeleteLabel(ctx context.Context, id string) error

	AddFilter(ctx context.Context, args command.FilterAddArgs) (string, error)
	UpdateFilter(ctx context.Context, args command.FilterUpdateArgs) error
	DeleteFilter(ctx context.Context, id string) error
	ReorderFilters(ctx context.Context, entries []command.OrderEntry) error

	// ExecuteBatch submits every envelope accumulated in b as one round trip
	// and resets b on a completed round trip.
	ExecuteBatch(ctx context.Context, b *command.Builder) (WriteResult, error)
}
