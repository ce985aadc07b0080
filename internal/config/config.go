// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env:       environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the credential, cache freshness window and logging settings.
	App App `envPrefix:"APP_"`

	// Adapter holds the sync endpoint location and request timeout.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage selects and locates the local cache backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds settings for `todosync watch`.
	Workers Workers `envPrefix:"WORKERS_"`

	// Metrics holds the optional metrics export target.
	Metrics Metrics `envPrefix:"METRICS_"`

	// JSONFilePath is the path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// APIToken is the bearer credential sent with every sync request.
	// Env: APP_API_TOKEN
	APIToken string `env:"API_TOKEN"`

	// CacheTTL is how long a cached snapshot is served without a round trip.
	// Env: APP_CACHE_TTL
	CacheTTL time.Duration `env:"CACHE_TTL"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// LogFile receives logs instead of stderr when set.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Adapter holds settings for the outbound sync transport.
type Adapter struct {
	// SyncURL is the sync endpoint. Tests point it at a local fake server.
	// Env: ADAPTER_SYNC_URL
	SyncURL string `env:"SYNC_URL"`

	// RequestTimeout bounds a single round trip (e.g. "30s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups local persistence settings.
type Storage struct {
	Cache Cache `envPrefix:"CACHE_"`
}

// Cache selects the cache backend.
type Cache struct {
	// Driver is "file" or "sqlite".
	// Env: STORAGE_CACHE_DRIVER
	Driver string `env:"DRIVER"`

	// Path is the JSON cache file used by the file driver.
	// Env: STORAGE_CACHE_PATH
	Path string `env:"PATH"`

	// DSN is the database file used by the sqlite driver.
	// Env: STORAGE_CACHE_DSN
	DSN string `env:"DSN"`
}

// Workers holds configuration for background refresh.
type Workers struct {
	// RefreshInterval is the tick of the watch loop.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// Metrics holds the metrics export settings.
type Metrics struct {
	// TextFile, when set, receives the counters in Prometheus text format
	// when the process exits.
	// Env: METRICS_TEXTFILE
	TextFile string `env:"TEXTFILE"`
}

const (
	CacheDriverFile   = "file"
	CacheDriverSQLite = "sqlite"
)

// Load reads, merges and validates the configuration. args are the
// command-line arguments without the program name; the positional arguments
// left after the global flags are returned for the command dispatcher.
func Load(args []string) (*StructuredConfig, []string, error) {
	b := newConfigBuilder().
		withFlags(args).
		withEnv().
		withJSON().
		withDefaults()

	cfg, err := b.build()
	return cfg, b.rest, err
}
