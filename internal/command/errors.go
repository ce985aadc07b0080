// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package command

import "errors"

var (
	// ErrMissingArgument is returned when a required argument is empty.
	ErrMissingArgument = errors.New("missing required argument")

	// ErrInvalidArgument is returned when an argument is present but out of range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNothingToUpdate is returned by update commands that carry no field to change.
	ErrNothingToUpdate = errors.New("nothing to update")

	// ErrUnknownCommand is returned when decoding a command whose type is not supported.
	ErrUnknownCommand = errors.New("unknown command type")

	// ErrDuplicateID is returned when a correlation or placeholder id repeats within one builder.
	ErrDuplicateID = errors.New("duplicate command id")
)
