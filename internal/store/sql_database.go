// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/migrations"
)

// DB wraps the sqlite connection of the cache backend.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies the embedded cache schema.
func (db *DB) Migrate(ctx context.Context) error {
	applied, err := migrations.Migrate(ctx, db.DB)
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		db.logger.Info().
			Str("func", "DB.Migrate").
			Ints64("versions", applied).
			Msg("cache schema migrated")
	}
	return nil
}
