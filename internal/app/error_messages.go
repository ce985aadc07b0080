// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app turns errors returned by the sync engine and the command line
// dispatcher into the message printed for the user and the process exit
// code.
//
// All Msg* constants are human-readable strings written to stderr. Keeping
// them in one place ensures consistent wording across commands.
package app

const (
	// MsgConfigNotFound is printed when no API token is configured.
	MsgConfigNotFound = "Error: Configuration not found.\n" +
		"To get started, obtain your API token from https://todoist.com/app/settings/integrations\n" +
		"Then run: todosync init --api-token YOUR_TOKEN"

	MsgUnauthorized = "Error: Unauthorized (401). Your API token might be invalid or expired."
	MsgForbidden    = "Error: Forbidden (403). You don't have permission to perform this action."
	MsgNotFound     = "Error: Not Found (404). The requested resource was not found."
	MsgRateLimited  = "Error: Too Many Requests (429). Todoist API rate limit exceeded. Please wait a moment."

	// MsgHTTPStatus is formatted with the status code of any other non-2xx answer.
	MsgHTTPStatus = "Error: Todoist API returned HTTP %d."

	// MsgConnectionHint is appended to transport errors raised while connecting.
	MsgConnectionHint = "Hint: Check your internet connection."

	// MsgOutcomeHint is appended when a write may or may not have been applied.
	MsgOutcomeHint = "Hint: Run `todosync sync --force` and check the result before retrying."

	// MsgCorruptedCacheHint is appended when the local cache cannot be read.
	MsgCorruptedCacheHint = "Hint: Run `todosync cache clear` to drop the local cache."

	MsgPrefixRequest      = "Network Request Error: "
	MsgPrefixAPI          = "Todoist API Error: "
	MsgPrefixConfig       = "Configuration Error: "
	MsgPrefixInvalidInput = "Invalid Input: "
	MsgPrefixSerialize    = "Data Processing Error: "
	MsgPrefixOutcome      = "Outcome Unknown: "
	MsgPrefixPartial      = "Partially Applied: "
	MsgPrefixCache        = "Cache Error: "
	MsgPrefixError        = "Error: "
)
