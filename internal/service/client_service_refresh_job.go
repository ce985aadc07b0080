// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"slices"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/models"
)

// DefaultRefreshInterval is used when a RefreshJob gets a non-positive
// interval.
const DefaultRefreshInterval = 5 * time.Minute

// RefreshJob keeps the cache warm. The first refresh goes through
// SyncWithCache, so a fresh cache is served without a round trip; every tick
// after that calls ReadSync. A tick lands when the snapshot is about one
// interval old, and with the interval equal to the cache TTL a cache-aware
// refresh would be skipped whenever the age rounds down to the TTL. It
// implements workers.Worker.
type RefreshJob struct {
	engine    SyncEngine
	kinds     []models.ResourceType
	interval  time.Duration
	logger    *logger.Logger
	onRefresh func(models.Resources, error)
}

// NewRefreshJob creates a job refreshing kinds every interval. onRefresh,
// if not nil, receives the result of every refresh, including the first
// one which runs as soon as the job starts.
func NewRefreshJob(engine SyncEngine, kinds []models.ResourceType, interval time.Duration, log *logger.Logger, onRefresh func(models.Resources, error)) *RefreshJob {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	if len(kinds) == 0 {
		kinds = []models.ResourceType{models.ResourceAll}
	}

	return &RefreshJob{
		engine:    engine,
		kinds:     slices.Clone(kinds),
		interval:  interval,
		logger:    log,
		onRefresh: onRefresh,
	}
}

// Run refreshes once, then on every tick, until ctx is cancelled. Refresh
// errors are reported and logged but never stop the job.
func (j *RefreshJob) Run(ctx context.Context) error {
	j.refresh(ctx, j.engine.SyncWithCache)

	t := time.NewTicker(j.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			j.refresh(ctx, j.engine.ReadSync)
		}
	}
}

func (j *RefreshJob) refresh(ctx context.Context, read func(context.Context, []models.ResourceType) (models.Resources, error)) {
	res, err := read(ctx, j.kinds)
	if err != nil && ctx.Err() != nil {
		return
	}
	if err != nil {
		j.logger.Err(err).Str("func", "RefreshJob.refresh").Msg("refresh failed")
	}
	if j.onRefresh != nil {
		j.onRefresh(res, err)
	}
}
