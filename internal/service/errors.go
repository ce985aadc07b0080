// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-todo-sync/internal/command"
	"github.com/MKhiriev/go-todo-sync/models"
)

var (
	ErrNoResourceTypes = errors.New("no resource types requested")
	ErrEmptyBatch      = errors.New("no commands to submit")

	// ErrPlaceholderUnresolved is returned when the server reported success
	// for a creation command but sent no real id for its placeholder.
	ErrPlaceholderUnresolved = errors.New("placeholder id not resolved")

	ErrTaskNotFound = errors.New("task not found")
)

// OperationFailure is one envelope the server rejected.
type OperationFailure struct {
	UUID  string
	Type  command.Type
	Error models.CommandError
}

// BatchError reports that one or more envelopes of a write batch failed.
// The envelopes not listed were applied or are reported separately by
// AmbiguousOutcomeError.
type BatchError struct {
	Failures []OperationFailure
}

func (e *BatchError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s %s: %s", f.Type, f.UUID, f.Error.String()))
	}
	return fmt.Sprintf("%d operation(s) failed: %s", len(e.Failures), strings.Join(parts, "; "))
}

// FailedUUIDs lists the correlation ids of the failed envelopes in
// submission order.
func (e *BatchError) FailedUUIDs() []string {
	ids := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		ids = append(ids, f.UUID)
	}
	return ids
}

// MissingOperation is an envelope whose correlation id is absent from the
// server's status map.
type MissingOperation struct {
	UUID string
	Type command.Type
}

// AmbiguousOutcomeError reports envelopes whose outcome is unknown: they may
// have been applied, dropped, or lost in transit. Cause is set when the whole
// round trip failed after the request may have been sent.
type AmbiguousOutcomeError struct {
	Missing []MissingOperation
	Cause   error
}

func (e *AmbiguousOutcomeError) Error() string {
	parts := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		parts = append(parts, fmt.Sprintf("%s %s", m.Type, m.UUID))
	}
	msg := fmt.Sprintf("outcome unknown for %d operation(s): %s", len(e.Missing), strings.Join(parts, ", "))
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *AmbiguousOutcomeError) Unwrap() error {
	return e.Cause
}
