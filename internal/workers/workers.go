// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
)

type Workers struct {
	workers []Worker
}

// NewWorkers groups ws. Nil workers are skipped.
func NewWorkers(ws ...Worker) *Workers {
	w := &Workers{workers: make([]Worker, 0, len(ws))}
	for _, worker := range ws {
		if worker != nil {
			w.workers = append(w.workers, worker)
		}
	}
	return w
}

// Run starts every worker in its own goroutine and waits for all of them.
// The first error cancels the context passed to the others and is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			err := worker.Run(gctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.FromContext(ctx).Err(err).
					Str("func", "Workers.Run").
					Msg("worker stopped")
			}
			return err
		})
	}
	return g.Wait()
}

// Len reports the number of grouped workers.
func (w *Workers) Len() int {
	return len(w.workers)
}
