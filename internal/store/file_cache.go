// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/models"
)

const (
	cacheDirPerm  os.FileMode = 0o700
	cacheFilePerm os.FileMode = 0o600
)

// fileCacheStore keeps the snapshot as one JSON document.
//
// Writes go to a temporary file in the same directory which is then renamed
// over the target, so readers never observe a partially written file.
type fileCacheStore struct {
	fs   afero.Fs
	path string

	mu     sync.Mutex
	logger *logger.Logger
}

// NewFileCacheStore returns a CacheStore writing to path on fsys.
func NewFileCacheStore(fsys afero.Fs, path string, log *logger.Logger) CacheStore {
	if log == nil {
		log = logger.Nop()
	}
	return &fileCacheStore{fs: fsys, path: path, logger: log}
}

func (s *fileCacheStore) Load(ctx context.Context) (*models.CacheSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache file: %w", err)
	}

	var snap models.CacheSnapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn().Err(err).Str("func", "fileCacheStore.Load").Str("path", s.path).Msg("cache file unreadable")
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptedCache, s.path, err)
	}

	return &snap, nil
}

func (s *fileCacheStore) Save(ctx context.Context, snap *models.CacheSnapshot) error {
	if snap == nil {
		return ErrNilSnapshot
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err = s.fs.MkdirAll(dir, cacheDirPerm); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		if rmErr := s.fs.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			s.logger.Warn().Err(rmErr).Str("func", "fileCacheStore.Save").Msg("temp cache file left behind")
		}
	}

	if _, err = tmp.Write(payload); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp cache file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp cache file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp cache file: %w", err)
	}
	if err = s.fs.Chmod(tmpName, cacheFilePerm); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp cache file: %w", err)
	}
	if err = s.fs.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("replace cache file: %w", err)
	}

	s.logger.Debug().Str("func", "fileCacheStore.Save").Str("path", s.path).Int("bytes", len(payload)).Msg("cache saved")
	return nil
}

func (s *fileCacheStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove cache file: %w", err)
	}
	return nil
}

func (s *fileCacheStore) Exists(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return afero.Exists(s.fs, s.path)
}

func (s *fileCacheStore) Close() error { return nil }
