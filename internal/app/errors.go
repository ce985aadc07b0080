// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-todo-sync/internal/adapter"
	"github.com/MKhiriev/go-todo-sync/internal/command"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/service"
	"github.com/MKhiriev/go-todo-sync/internal/store"
	"github.com/MKhiriev/go-todo-sync/models"
)

// ErrUsage is returned by the dispatcher for unknown commands and bad flags.
var ErrUsage = errors.New("usage error")

// Class groups errors by what they mean for the server state.
type Class int

const (
	ClassNone Class = iota

	// ClassNothingChanged: the request failed before the server applied
	// anything (transport, HTTP status, malformed response, local cache).
	ClassNothingChanged

	// ClassPartiallyApplied: the server applied the batch except for the
	// commands it rejected.
	ClassPartiallyApplied

	// ClassOutcomeUnknown: some commands may or may not have been applied.
	ClassOutcomeUnknown

	// ClassInvalidInput: the input was rejected locally; nothing was sent.
	ClassInvalidInput

	ClassConfig
)

func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassNothingChanged:
		return "nothing_changed"
	case ClassPartiallyApplied:
		return "partially_applied"
	case ClassOutcomeUnknown:
		return "outcome_unknown"
	case ClassInvalidInput:
		return "invalid_input"
	case ClassConfig:
		return "config"
	}
	return fmt.Sprintf("class(%d)", int(c))
}

// Exit codes of the command line client.
const (
	ExitOK               = 0
	ExitNothingChanged   = 1
	ExitInvalidInput     = 2
	ExitConfig           = 3
	ExitPartiallyApplied = 4
	ExitOutcomeUnknown   = 5
)

// Classify reports the class of err. An unknown outcome wins over a
// partial failure when a write produced both.
func Classify(err error) Class {
	if err == nil {
		return ClassNone
	}

	var (
		ambiguous *service.AmbiguousOutcomeError
		batch     *service.BatchError
	)
	switch {
	case errors.As(err, &ambiguous), errors.Is(err, service.ErrPlaceholderUnresolved):
		return ClassOutcomeUnknown
	case errors.As(err, &batch):
		return ClassPartiallyApplied
	case errors.Is(err, config.ErrInvalidFlags):
		return ClassInvalidInput
	case isConfigError(err):
		return ClassConfig
	case isInvalidInput(err):
		return ClassInvalidInput
	}

	return ClassNothingChanged
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	switch Classify(err) {
	case ClassNone:
		return ExitOK
	case ClassPartiallyApplied:
		return ExitPartiallyApplied
	case ClassOutcomeUnknown:
		return ExitOutcomeUnknown
	case ClassInvalidInput:
		return ExitInvalidInput
	case ClassConfig:
		return ExitConfig
	}
	return ExitNothingChanged
}

// Message returns the text printed for err on stderr.
func Message(err error) string {
	if err == nil {
		return ""
	}

	switch Classify(err) {
	case ClassOutcomeUnknown:
		return MsgPrefixOutcome + err.Error() + "\n" + MsgOutcomeHint

	case ClassPartiallyApplied:
		var batch *service.BatchError
		errors.As(err, &batch)
		return MsgPrefixPartial + batch.Error() + "\nThe other operations were applied."

	case ClassConfig:
		if errors.Is(err, config.ErrTokenNotConfigured) {
			return MsgConfigNotFound
		}
		return MsgPrefixConfig + err.Error()

	case ClassInvalidInput:
		return MsgPrefixInvalidInput + err.Error()
	}

	return nothingChangedMessage(err)
}

func nothingChangedMessage(err error) string {
	var statusErr *adapter.HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusMessage(statusErr)
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		// an empty token is rejected before any request is made
		return MsgUnauthorized
	case errors.Is(err, adapter.ErrTransport):
		msg := MsgPrefixRequest + err.Error()
		if isConnectError(err) {
			msg += "\n" + MsgConnectionHint
		}
		return msg
	case errors.Is(err, adapter.ErrMalformedResponse):
		return MsgPrefixSerialize + err.Error()
	case errors.Is(err, store.ErrCorruptedCache):
		return MsgPrefixCache + err.Error() + "\n" + MsgCorruptedCacheHint
	}

	return MsgPrefixError + err.Error()
}

func statusMessage(e *adapter.HTTPStatusError) string {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return MsgUnauthorized
	case http.StatusForbidden:
		return MsgForbidden
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusTooManyRequests:
		return MsgRateLimited
	case http.StatusBadRequest:
		if body := strings.TrimSpace(e.Body); body != "" {
			return MsgPrefixAPI + body
		}
	}
	return fmt.Sprintf(MsgHTTPStatus, e.StatusCode)
}

func isConfigError(err error) bool {
	for _, target := range []error{
		config.ErrTokenNotConfigured,
		config.ErrInvalidAppConfigs,
		config.ErrInvalidAdapterConfigs,
		config.ErrInvalidStorageConfigs,
		config.ErrInvalidWorkerConfigs,
		store.ErrUnknownCacheDriver,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isInvalidInput(err error) bool {
	for _, target := range []error{
		ErrUsage,
		command.ErrMissingArgument,
		command.ErrInvalidArgument,
		command.ErrNothingToUpdate,
		command.ErrUnknownCommand,
		command.ErrDuplicateID,
		service.ErrNoResourceTypes,
		service.ErrEmptyBatch,
		service.ErrTaskNotFound,
		models.ErrUnknownResourceType,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isConnectError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}
