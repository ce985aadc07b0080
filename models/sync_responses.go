// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// statusOK is the literal the server reports for an applied command.
const statusOK = "ok"

// ReadResponse is the body of a successful read sync.
type ReadResponse struct {
	SyncToken string        `json:"sync_token"`
	FullSync  bool          `json:"full_sync"`
	Projects  []SyncProject `json:"projects,omitempty"`
	Items     []SyncTask    `json:"items,omitempty"`
	Sections  []SyncSection `json:"sections,omitempty"`
	Labels    []SyncLabel   `json:"labels,omitempty"`
	Filters   []SyncFilter  `json:"filters,omitempty"`
}

// WriteResponse is the body of a successful command submission.
//
// SyncStatus is keyed by the correlation id (uuid) of every command the
// server looked at; TempIDMapping maps the placeholder ids of creation
// commands to the ids the server assigned.
type WriteResponse struct {
	SyncToken     string                   `json:"sync_token"`
	SyncStatus    map[string]CommandStatus `json:"sync_status"`
	TempIDMapping map[string]string        `json:"temp_id_mapping"`
}

// CommandError is the error payload the server reports for a rejected command.
type CommandError struct {
	ErrorCode  int            `json:"error_code,omitempty"`
	Error      string         `json:"error,omitempty"`
	ErrorTag   string         `json:"error_tag,omitempty"`
	HTTPCode   int            `json:"http_code,omitempty"`
	ErrorExtra map[string]any `json:"error_extra,omitempty"`
}

// String renders the error payload for logs and aggregate error messages.
func (e CommandError) String() string {
	var b strings.Builder
	if e.ErrorTag != "" {
		b.WriteString(e.ErrorTag)
	}
	if e.ErrorCode != 0 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "(code %d)", e.ErrorCode)
	}
	if e.Error != "" {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(e.Error)
	}
	if b.Len() == 0 {
		return "unknown error"
	}
	return b.String()
}

// CommandStatus is the per-command outcome. The server sends either the
// string "ok", an error object, or (for commands touching several records)
// an object mapping record ids to their own outcome.
type CommandStatus struct {
	OK    bool
	Error *CommandError
}

// StatusOK returns a successful outcome.
func StatusOK() CommandStatus {
	return CommandStatus{OK: true}
}

// StatusFailed returns a failed outcome carrying e.
func StatusFailed(e CommandError) CommandStatus {
	return CommandStatus{Error: &e}
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *CommandStatus) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*s = CommandStatus{}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		s.Error = &CommandError{Error: "empty command status"}
		return nil
	}

	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		if str == statusOK {
			s.OK = true
			return nil
		}
		s.Error = &CommandError{Error: str}
		return nil

	case '{':
		var cmdErr CommandError
		if err := json.Unmarshal(data, &cmdErr); err == nil &&
			(cmdErr.Error != "" || cmdErr.ErrorCode != 0 || cmdErr.ErrorTag != "") {
			s.Error = &cmdErr
			return nil
		}

		var perRecord map[string]CommandStatus
		if err := json.Unmarshal(data, &perRecord); err != nil {
			return err
		}
		if len(perRecord) == 0 {
			s.Error = &CommandError{Error: "empty command status"}
			return nil
		}

		ids := make([]string, 0, len(perRecord))
		for id := range perRecord {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		var failed []string
		for _, id := range ids {
			if st := perRecord[id]; !st.OK {
				failed = append(failed, id+": "+st.Error.String())
			}
		}
		if len(failed) == 0 {
			s.OK = true
			return nil
		}
		s.Error = &CommandError{Error: strings.Join(failed, "; ")}
		return nil
	}

	s.Error = &CommandError{Error: "unrecognized command status " + string(data)}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s CommandStatus) MarshalJSON() ([]byte, error) {
	if s.OK {
		return json.Marshal(statusOK)
	}
	if s.Error == nil {
		return json.Marshal(CommandError{Error: "unknown error"})
	}
	return json.Marshal(s.Error)
}
