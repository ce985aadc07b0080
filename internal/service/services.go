// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-todo-sync/internal/adapter"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/store"
)

type Services struct {
	Engine  SyncEngine
	Tasks   TaskService
	Metrics *Metrics
}

func NewServices(syncAdapter adapter.SyncAdapter, cache store.CacheStore, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	metrics := NewMetrics()
	engine := NewSyncEngine(syncAdapter, cache, logger,
		WithCacheTTL(cfg.App.CacheTTL),
		WithMetrics(metrics),
	)

	return &Services{
		Engine:  engine,
		Tasks:   NewTaskService(engine, nil),
		Metrics: metrics,
	}
}
