// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned when the merged configuration is unusable.
var (
	// ErrInvalidAdapterConfigs indicates an unusable sync URL or timeout.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates an unknown cache driver or a
	// missing cache location.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates a missing API token or a negative cache TTL.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates a non-positive refresh interval.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")

	// ErrInvalidFlags wraps command-line parsing errors, including
	// pflag.ErrHelp.
	ErrInvalidFlags = errors.New("invalid command-line flags")

	// ErrTokenNotConfigured is returned by RequireToken.
	ErrTokenNotConfigured = errors.New("no api token configured")
)
