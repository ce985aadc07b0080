// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the todosync command line runtime.
//
// App dispatches one command per process: it wires the sync adapter, the
// cache store and the services on first use, prints results as JSON on
// stdout and leaves logs and error messages to the caller's stderr.
package client
