// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultSyncURL         = "https://api.todoist.com/api/v1/sync"
	DefaultCacheTTL        = 5 * time.Minute
	DefaultRequestTimeout  = 30 * time.Second
	DefaultRefreshInterval = 5 * time.Minute
	DefaultLogLevel        = "info"

	appDirName = "todosync"
)

// appDir returns the per-user configuration directory of the client, or ""
// when the platform does not define one.
func appDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDirName)
}

func inAppDir(name string) string {
	dir := appDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, name)
}

// DefaultConfigPath is where `todosync init` writes the JSON config.
func DefaultConfigPath() string { return inAppDir("config.json") }

// DefaultCachePath is the JSON cache file of the file driver.
func DefaultCachePath() string { return inAppDir("cache.json") }

// DefaultCacheDSN is the database file of the sqlite driver.
func DefaultCacheDSN() string { return inAppDir("cache.db") }

// Defaults returns the values used for every field no source has set.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			CacheTTL: DefaultCacheTTL,
			LogLevel: DefaultLogLevel,
		},
		Adapter: Adapter{
			SyncURL:        DefaultSyncURL,
			RequestTimeout: DefaultRequestTimeout,
		},
		Storage: Storage{
			Cache: Cache{
				Driver: CacheDriverFile,
				Path:   DefaultCachePath(),
				DSN:    DefaultCacheDSN(),
			},
		},
		Workers: Workers{
			RefreshInterval: DefaultRefreshInterval,
		},
	}
}
