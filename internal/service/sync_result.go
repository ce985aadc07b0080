// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-todo-sync/internal/command"
	"github.com/MKhiriev/go-todo-sync/models"
)

// OutcomeState is the client-side view of one envelope after a write.
type OutcomeState string

const (
	OutcomeApplied OutcomeState = "applied"
	OutcomeFailed  OutcomeState = "failed"
	OutcomeUnknown OutcomeState = "unknown"
)

// Outcome is the result of a single envelope.
type Outcome struct {
	State  OutcomeState         `json:"state"`
	RealID string               `json:"real_id,omitempty"`
	Error  *models.CommandError `json:"error,omitempty"`
}

// WriteResult is what the engine learned from one write round trip.
type WriteResult struct {
	SyncToken     string             `json:"sync_token"`
	Outcomes      map[string]Outcome `json:"outcomes"`
	TempIDMapping map[string]string  `json:"temp_id_mapping,omitempty"`
}

// Outcome returns the outcome recorded for env.
func (r WriteResult) Outcome(env command.Envelope) (Outcome, bool) {
	o, ok := r.Outcomes[env.UUID]
	return o, ok
}

// RealID returns the server id of the record env created. It is resolved
// through env's own placeholder and is only reported for applied
// envelopes.
func (r WriteResult) RealID(env command.Envelope) (string, bool) {
	if env.TempID == "" {
		return "", false
	}
	o, ok := r.Outcomes[env.UUID]
	if !ok || o.State != OutcomeApplied || o.RealID == "" {
		return "", false
	}
	return o.RealID, true
}

// Applied reports whether the server applied env.
func (r WriteResult) Applied(env command.Envelope) bool {
	o, ok := r.Outcomes[env.UUID]
	return ok && o.State == OutcomeApplied
}

// CacheStatus describes the persisted snapshot.
type CacheStatus struct {
	Exists     bool                        `json:"exists"`
	Corrupted  bool                        `json:"corrupted,omitempty"`
	SyncToken  string                      `json:"sync_token,omitempty"`
	CachedAt   int64                       `json:"cached_at,omitempty"`
	AgeSeconds int64                       `json:"age_seconds"`
	Expired    bool                        `json:"expired"`
	Fetched    []models.ResourceType       `json:"fetched,omitempty"`
	Records    map[models.ResourceType]int `json:"records,omitempty"`
}
