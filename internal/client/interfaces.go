// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the lifecycle contract of the command line runtime.
type Client interface {
	// Run executes the command named by args[0] and blocks until it is done
	// or ctx is cancelled.
	Run(ctx context.Context, args []string) error

	// Close releases the cache store and flushes metrics.
	Close() error
}
