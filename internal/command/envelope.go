// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package command

import "encoding/json"

// Envelope is one command ready for submission.
//
// UUID correlates the command with its entry in the server's sync_status.
// TempID is set only for creation commands; the server maps it to the real id
// of the created record in temp_id_mapping. Envelopes are values and are not
// modified after construction.
type Envelope struct {
	Type   Type
	UUID   string
	TempID string
	Args   Args
}

type wireEnvelope struct {
	Type   Type   `json:"type"`
	UUID   string `json:"uuid"`
	TempID string `json:"temp_id,omitempty"`
	Args   Args   `json:"args"`
}

// MarshalJSON renders the envelope in the form the sync endpoint accepts.
func (e Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireEnvelope(e))
}

// Encode serializes a batch of envelopes as the JSON array sent in the
// commands form field.
func Encode(envs []Envelope) (string, error) {
	if envs == nil {
		envs = []Envelope{}
	}
	data, err := json.Marshal(envs)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
