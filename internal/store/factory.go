// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
)

// NewCacheStore builds the backend selected by cfg.Driver. fsys is used by
// the file driver; nil selects the OS filesystem.
func NewCacheStore(ctx context.Context, cfg config.Cache, fsys afero.Fs, log *logger.Logger) (CacheStore, error) {
	if log == nil {
		log = logger.Nop()
	}

	switch cfg.Driver {
	case config.CacheDriverFile, "":
		if fsys == nil {
			fsys = afero.NewOsFs()
		}
		return NewFileCacheStore(fsys, cfg.Path, log), nil

	case config.CacheDriverSQLite:
		db, err := NewConnectSQLite(ctx, cfg.DSN, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite cache connection error: %w", err)
		}
		if err = db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite cache migration failed: %w", err)
		}
		return NewSQLiteCacheStore(db, log), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCacheDriver, cfg.Driver)
}
