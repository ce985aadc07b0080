// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ParseFlags parses the global flags in args. Parsing stops at the first
// positional argument, which together with everything after it is returned
// as rest; command specific flags are left to the dispatcher.
//
// Flags:
//
//	--api-token          API token
//	--cache-ttl          cache freshness window (e.g. "5m")
//	--log-level          log level
//	--log-file           log file path
//	--sync-url           sync endpoint URL
//	--request-timeout    request timeout (e.g. "30s")
//	--cache-driver       cache backend: file or sqlite
//	--cache-path         JSON cache file path
//	--cache-dsn          sqlite cache database path
//	--refresh-interval   watch refresh interval
//	--metrics-textfile   metrics export file
//	-c/--config          JSON config file path
func ParseFlags(args []string) (*StructuredConfig, []string, error) {
	cfg := &StructuredConfig{}

	fs := pflag.NewFlagSet("todosync", pflag.ContinueOnError)
	fs.SetInterspersed(false)

	fs.StringVar(&cfg.App.APIToken, "api-token", "", "API token")
	fs.DurationVar(&cfg.App.CacheTTL, "cache-ttl", 0, "Cache freshness window (e.g. 5m)")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.App.LogFile, "log-file", "", "Log file path (default stderr)")
	fs.StringVar(&cfg.Adapter.SyncURL, "sync-url", "", "Sync endpoint URL")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "request-timeout", 0, "Request timeout (e.g. 30s)")
	fs.StringVar(&cfg.Storage.Cache.Driver, "cache-driver", "", "Cache backend: file or sqlite")
	fs.StringVar(&cfg.Storage.Cache.Path, "cache-path", "", "JSON cache file path")
	fs.StringVar(&cfg.Storage.Cache.DSN, "cache-dsn", "", "SQLite cache database path")
	fs.DurationVar(&cfg.Workers.RefreshInterval, "refresh-interval", 0, "Watch refresh interval (e.g. 5m)")
	fs.StringVar(&cfg.Metrics.TextFile, "metrics-textfile", "", "Write metrics to this file on exit")
	fs.StringVarP(&cfg.JSONFilePath, "config", "c", "", "JSON config file path")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidFlags, err)
	}

	return cfg, fs.Args(), nil
}
