// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package command

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// BatchEntry is one element of a user supplied batch file. TempID is
// optional; when set it lets later entries in the same file refer to the
// record created by this one.
type BatchEntry struct {
	Type   Type            `json:"type"`
	TempID string          `json:"temp_id,omitempty"`
	Args   json.RawMessage `json:"args"`
}

type argsDecoder func(json.RawMessage) (Args, error)

func decodeAs[T Args](raw json.RawMessage) (Args, error) {
	var a T
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	return a, nil
}

var decoders = map[Type]argsDecoder{
	TypeItemAdd:            decodeAs[ItemAddArgs],
	TypeItemUpdate:         decodeAs[ItemUpdateArgs],
	TypeItemClose:          decodeAs[ItemCloseArgs],
	TypeItemComplete:       decodeAs[ItemCompleteArgs],
	TypeItemReopen:         decodeAs[ItemReopenArgs],
	TypeItemDelete:         decodeAs[ItemDeleteArgs],
	TypeItemMove:           decodeAs[ItemMoveArgs],
	TypeProjectAdd:         decodeAs[ProjectAddArgs],
	TypeProjectUpdate:      decodeAs[ProjectUpdateArgs],
	TypeProjectDelete:      decodeAs[ProjectDeleteArgs],
	TypeSectionAdd:         decodeAs[SectionAddArgs],
	TypeSectionUpdate:      decodeAs[SectionUpdateArgs],
	TypeSectionDelete:      decodeAs[SectionDeleteArgs],
	TypeSectionArchive:     decodeAs[SectionArchiveArgs],
	TypeSectionUnarchive:   decodeAs[SectionUnarchiveArgs],
	TypeSectionMove:        decodeAs[SectionMoveArgs],
	TypeSectionReorder:     decodeAs[SectionReorderArgs],
	TypeLabelAdd:           decodeAs[LabelAddArgs],
	TypeLabelUpdate:        decodeAs[LabelUpdateArgs],
	TypeLabelDelete:        decodeAs[LabelDeleteArgs],
	TypeFilterAdd:          decodeAs[FilterAddArgs],
	TypeFilterUpdate:       decodeAs[FilterUpdateArgs],
	TypeFilterDelete:       decodeAs[FilterDeleteArgs],
	TypeFilterUpdateOrders: decodeAs[FilterUpdateOrdersArgs],
}

// Supported reports whether t is a command type this package can build.
func Supported(t Type) bool {
	_, ok := decoders[t]
	return ok
}

// DecodeBatch reads a JSON array of batch entries and appends every entry to
// b. Decoding stops at the first invalid entry; entries appended before it
// stay in the builder, so callers usually Reset on error.
func DecodeBatch(r io.Reader, b *Builder) error {
	var entries []BatchEntry
	dec := json.NewDecoder(r)
	if err := dec.Decode(&entries); err != nil {
		return fmt.Errorf("%w: batch is not a JSON array of commands: %v", ErrInvalidArgument, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: batch is empty", ErrMissingArgument)
	}

	for i, entry := range entries {
		decode, ok := decoders[entry.Type]
		if !ok {
			return fmt.Errorf("command %d: %w: %q", i, ErrUnknownCommand, entry.Type)
		}
		args, err := decode(entry.Args)
		if err != nil {
			return fmt.Errorf("command %d (%s): %w: %v", i, entry.Type, ErrInvalidArgument, err)
		}
		if entry.TempID != "" && !entry.Type.IsCreation() {
			return fmt.Errorf("command %d (%s): %w: temp_id is only allowed on creation commands",
				i, entry.Type, ErrInvalidArgument)
		}
		if _, err = b.add(args, entry.TempID); err != nil {
			return fmt.Errorf("command %d: %w", i, err)
		}
	}
	return nil
}
