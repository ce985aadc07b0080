// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/models"
)

const (
	tableCacheMeta     = "cache_meta"
	tableCacheSections = "cache_sections"

	// cache_meta holds a single row
	metaRowID = 1
)

// sqliteCacheStore keeps the snapshot in two tables: cache_meta for the
// continuation token and capture time, cache_sections for one JSON array per
// resource type plus a flag telling whether a read ever filled it. Save and
// Clear run in one transaction each.
type sqliteCacheStore struct {
	db     *DB
	logger *logger.Logger
}

// NewSQLiteCacheStore returns a CacheStore on an already migrated db.
func NewSQLiteCacheStore(db *DB, log *logger.Logger) CacheStore {
	if log == nil {
		log = logger.Nop()
	}
	return &sqliteCacheStore{db: db, logger: log}
}

func (s *sqliteCacheStore) Load(ctx context.Context) (*models.CacheSnapshot, error) {
	query, args, err := sq.Select("sync_token", "cached_at").
		From(tableCacheMeta).
		Where(sq.Eq{"id": metaRowID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build meta query: %w", err)
	}

	snap := &models.CacheSnapshot{}
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&snap.SyncToken, &snap.CachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cache meta: %w", err)
	}

	query, args, err = sq.Select("kind", "payload", "fetched").From(tableCacheSections).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sections query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load cache sections: %w", err)
	}
	defer rows.Close()

	var fetched []models.ResourceType
	for rows.Next() {
		var (
			kind, payload string
			wasFetched    bool
		)
		if err = rows.Scan(&kind, &payload, &wasFetched); err != nil {
			return nil, fmt.Errorf("scan cache section: %w", err)
		}
		if wasFetched {
			fetched = append(fetched, models.ResourceType(kind))
		}
		if err = decodeSection(&snap.Data, models.ResourceType(kind), []byte(payload)); err != nil {
			s.logger.Warn().Err(err).Str("func", "sqliteCacheStore.Load").Str("kind", kind).Msg("cache section unreadable")
			return nil, fmt.Errorf("%w: section %s: %v", ErrCorruptedCache, kind, err)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cache sections: %w", err)
	}
	if len(fetched) > 0 {
		// rows come back in no particular order
		snap.MarkFetched(fetched)
	}

	return snap, nil
}

func (s *sqliteCacheStore) Save(ctx context.Context, snap *models.CacheSnapshot) (err error) {
	if snap == nil {
		return ErrNilSnapshot
	}

	sections := sq.Replace(tableCacheSections).Columns("kind", "payload", "fetched")
	for _, kind := range models.AllResourceTypes {
		payload, encErr := encodeSection(snap.Data, kind)
		if encErr != nil {
			return fmt.Errorf("encode cache section %s: %w", kind, encErr)
		}
		sections = sections.Values(string(kind), string(payload), snap.Covers([]models.ResourceType{kind}))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache save: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = sq.Replace(tableCacheMeta).
		Columns("id", "sync_token", "cached_at").
		Values(metaRowID, snap.SyncToken, snap.CachedAt).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("save cache meta: %w", err)
	}

	if _, err = sections.RunWith(tx).ExecContext(ctx); err != nil {
		return fmt.Errorf("save cache sections: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit cache save: %w", err)
	}

	s.logger.Debug().Str("func", "sqliteCacheStore.Save").Str("sync_token", snap.SyncToken).Msg("cache saved")
	return nil
}

func (s *sqliteCacheStore) Clear(ctx context.Context) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache clear: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = sq.Delete(tableCacheSections).RunWith(tx).ExecContext(ctx); err != nil {
		return fmt.Errorf("clear cache sections: %w", err)
	}
	if _, err = sq.Delete(tableCacheMeta).RunWith(tx).ExecContext(ctx); err != nil {
		return fmt.Errorf("clear cache meta: %w", err)
	}

	return tx.Commit()
}

func (s *sqliteCacheStore) Exists(ctx context.Context) (bool, error) {
	query, args, err := sq.Select("COUNT(*)").From(tableCacheMeta).ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var n int
	if err = s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("count cache meta: %w", err)
	}
	return n > 0, nil
}

func (s *sqliteCacheStore) Close() error {
	return s.db.Close()
}

func encodeSection(d models.CacheData, kind models.ResourceType) ([]byte, error) {
	switch kind {
	case models.ResourceProjects:
		return json.Marshal(nonNil(d.Projects))
	case models.ResourceItems:
		return json.Marshal(nonNil(d.Items))
	case models.ResourceSections:
		return json.Marshal(nonNil(d.Sections))
	case models.ResourceLabels:
		return json.Marshal(nonNil(d.Labels))
	case models.ResourceFilters:
		return json.Marshal(nonNil(d.Filters))
	}
	return nil, fmt.Errorf("unknown resource type %q", kind)
}

// decodeSection fills the section of d named by kind. Unknown kinds written
// by a newer client are ignored.
func decodeSection(d *models.CacheData, kind models.ResourceType, payload []byte) error {
	switch kind {
	case models.ResourceProjects:
		return json.Unmarshal(payload, &d.Projects)
	case models.ResourceItems:
		return json.Unmarshal(payload, &d.Items)
	case models.ResourceSections:
		return json.Unmarshal(payload, &d.Sections)
	case models.ResourceLabels:
		return json.Unmarshal(payload, &d.Labels)
	case models.ResourceFilters:
		return json.Unmarshal(payload, &d.Filters)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
