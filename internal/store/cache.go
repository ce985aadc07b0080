// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	"github.com/MKhiriev/go-todo-sync/models"
)

// IsExpired reports whether snap is older than threshold at now. Ages are
// compared in whole seconds, and a snapshot whose age equals the threshold
// is still fresh. A nil snapshot is always expired.
func IsExpired(snap *models.CacheSnapshot, threshold time.Duration, now time.Time) bool {
	if snap == nil {
		return true
	}
	return Age(snap, now) > int64(threshold/time.Second)
}

// Age returns the age of snap at now in seconds. It is negative when the
// snapshot claims to come from the future.
func Age(snap *models.CacheSnapshot, now time.Time) int64 {
	return now.Unix() - snap.CachedAt
}
