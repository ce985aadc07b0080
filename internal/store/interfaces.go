// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists the most recent read-sync snapshot between runs.
//
// Two backends implement [CacheStore]: a JSON file written atomically through
// an afero filesystem, and a sqlite database migrated with goose. Both treat
// a missing cache as "no snapshot" and report unreadable content as
// [ErrCorruptedCache], which callers treat the same way.
package store

import (
	"context"

	"github.com/MKhiriev/go-todo-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/cache_store_mock.go -package=mock

// CacheStore loads and saves a single cache snapshot.
type CacheStore interface {
	// Load returns the stored snapshot, or nil and no error when there is none.
	Load(ctx context.Context) (*models.CacheSnapshot, error)

	// Save replaces the stored snapshot. A concurrent reader sees either the
	// old or the new snapshot, never a mix.
	Save(ctx context.Context, snap *models.CacheSnapshot) error

	// Clear removes the stored snapshot. Clearing an empty store succeeds.
	Clear(ctx context.Context) error

	// Exists reports whether a snapshot is stored.
	Exists(ctx context.Context) (bool, error)

	// Close releases resources held by the backend.
	Close() error
}
