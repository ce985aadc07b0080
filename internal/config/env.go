// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv reads the todosync variables into cfg. Each section has its own
// prefix:
//
//	APP_       API_TOKEN, CACHE_TTL, LOG_LEVEL, LOG_FILE
//	ADAPTER_   SYNC_URL, REQUEST_TIMEOUT
//	STORAGE_   CACHE_DRIVER, CACHE_PATH, CACHE_DSN
//	WORKERS_   REFRESH_INTERVAL
//	METRICS_   TEXTFILE
//
// CONFIG names the JSON file. Durations use time.ParseDuration syntax.
// Whitespace around APP_API_TOKEN is dropped, so a token exported with
// $(cat token.txt) keeps working.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	cfg.App.APIToken = strings.TrimSpace(cfg.App.APIToken)
	return nil
}
