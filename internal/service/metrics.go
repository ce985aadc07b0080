// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "todosync"

// Label values.
const (
	resultOK    = "ok"
	resultError = "error"

	lookupHit     = "hit"
	lookupStale   = "stale"
	lookupMiss    = "miss"
	lookupCorrupt = "corrupt"
)

// Metrics holds the engine counters on a private registry, so several
// engines (and tests) never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	readSyncs    *prometheus.CounterVec
	writeSyncs   *prometheus.CounterVec
	commands     *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	cacheWrites  *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		readSyncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "read_syncs_total",
			Help:      "Read sync round trips by result.",
		}, []string{"result"}),
		writeSyncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "write_syncs_total",
			Help:      "Write sync round trips by result.",
		}, []string{"result"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "commands_total",
			Help:      "Submitted commands by reported outcome.",
		}, []string{"outcome"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by result.",
		}, []string{"result"}),
		cacheWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_writes_total",
			Help:      "Snapshot persist attempts by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(m.readSyncs, m.writeSyncs, m.commands, m.cacheLookups, m.cacheWrites)
	return m
}

// Gatherer exposes the registry, e.g. for promhttp or testutil.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes every counter to path in the Prometheus text format,
// for pickup by the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) readSync(result string) {
	m.readSyncs.WithLabelValues(result).Inc()
}

func (m *Metrics) writeSync(result string) {
	m.writeSyncs.WithLabelValues(result).Inc()
}

func (m *Metrics) command(outcome OutcomeState) {
	m.commands.WithLabelValues(string(outcome)).Inc()
}

func (m *Metrics) cacheLookup(result string) {
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) cacheWrite(result string) {
	m.cacheWrites.WithLabelValues(result).Inc()
}
