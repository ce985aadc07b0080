// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate checks the merged configuration. The API token is not checked
// here because some commands (version, init, cache) run without one; use
// RequireToken before talking to the server.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.CacheTTL < 0 {
		return fmt.Errorf("%w: negative cache ttl", ErrInvalidAppConfigs)
	}

	if err := validateSyncURL(cfg.Adapter.SyncURL); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAdapterConfigs, err)
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidAdapterConfigs)
	}

	switch cfg.Storage.Cache.Driver {
	case CacheDriverFile:
		if cfg.Storage.Cache.Path == "" {
			return fmt.Errorf("%w: empty cache path", ErrInvalidStorageConfigs)
		}
	case CacheDriverSQLite:
		if cfg.Storage.Cache.DSN == "" || strings.Contains(cfg.Storage.Cache.DSN, ":memory:") {
			return fmt.Errorf("%w: sqlite cache needs a database file", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown cache driver %q", ErrInvalidStorageConfigs, cfg.Storage.Cache.Driver)
	}

	if cfg.Workers.RefreshInterval <= 0 {
		return fmt.Errorf("%w: refresh interval must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}

// RequireToken reports ErrTokenNotConfigured, which also matches
// ErrInvalidAppConfigs, when no API token is configured.
func (cfg *StructuredConfig) RequireToken() error {
	if strings.TrimSpace(cfg.App.APIToken) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, ErrTokenNotConfigured)
	}
	return nil
}

func validateSyncURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("empty sync url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("sync url %q must be an absolute http(s) url", raw)
	}
	return nil
}
