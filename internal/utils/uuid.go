// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides small helpers shared by the sync client and its
// test doubles: id generation, the preconfigured resty client and JSON
// response writing.
package utils

import "github.com/google/uuid"

// UUIDGenerator produces command correlation and placeholder ids.
//
// Version 7 UUIDs are preferred because they sort by creation time, which
// keeps request logs readable. If the time source fails the generator falls
// back to a random version 4 UUID.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new id in canonical textual form.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
