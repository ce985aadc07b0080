// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

var (
	// ErrCorruptedCache is returned by Load when the stored snapshot cannot be
	// decoded, for example after a torn write by an older client.
	ErrCorruptedCache = errors.New("corrupted cache")

	// ErrUnknownCacheDriver is returned by NewCacheStore for an unsupported driver.
	ErrUnknownCacheDriver = errors.New("unknown cache driver")

	// ErrNilSnapshot is returned by Save when given nothing to save.
	ErrNilSnapshot = errors.New("nil cache snapshot")
)
