// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package command

import (
	"fmt"
	"slices"

	"github.com/MKhiriev/go-todo-sync/internal/utils"
)

// IDGenerator produces correlation and placeholder ids.
type IDGenerator interface {
	Generate() string
}

// Builder accumulates the envelopes of one round trip in submission order.
//
// Every envelope gets a fresh correlation id; creation commands additionally
// get a fresh placeholder id. Ids are unique within a builder. A Builder is
// not safe for concurrent use.
type Builder struct {
	ids       IDGenerator
	envelopes []Envelope
	used      map[string]struct{}
}

// NewBuilder returns an empty builder. A nil generator selects UUIDs.
func NewBuilder(ids IDGenerator) *Builder {
	if ids == nil {
		ids = utils.NewUUIDGenerator()
	}
	return &Builder{ids: ids, used: make(map[string]struct{})}
}

// Add validates args, wraps them in an envelope and appends it to the batch.
func (b *Builder) Add(args Args) (Envelope, error) {
	return b.add(args, "")
}

// add appends an envelope. A non-empty tempID is used instead of a generated
// placeholder; it must not collide with ids already in the batch.
func (b *Builder) add(args Args, tempID string) (Envelope, error) {
	if args == nil {
		return Envelope{}, fmt.Errorf("%w: args", ErrMissingArgument)
	}
	if err := args.validate(); err != nil {
		return Envelope{}, fmt.Errorf("%s: %w", args.Type(), err)
	}

	env := Envelope{Type: args.Type(), Args: args}

	var err error
	if env.UUID, err = b.fresh(); err != nil {
		return Envelope{}, err
	}

	if env.Type.IsCreation() {
		switch {
		case tempID == "":
			if env.TempID, err = b.fresh(); err != nil {
				return Envelope{}, err
			}
		default:
			if _, dup := b.used[tempID]; dup {
				return Envelope{}, fmt.Errorf("%w: temp_id %q", ErrDuplicateID, tempID)
			}
			b.used[tempID] = struct{}{}
			env.TempID = tempID
		}
	}

	b.envelopes = append(b.envelopes, env)
	return env, nil
}

// fresh draws a generated id that is not yet used in this batch.
func (b *Builder) fresh() (string, error) {
	const attempts = 3
	for range attempts {
		id := b.ids.Generate()
		if id == "" {
			continue
		}
		if _, dup := b.used[id]; dup {
			continue
		}
		b.used[id] = struct{}{}
		return id, nil
	}
	return "", fmt.Errorf("%w: generator keeps returning used ids", ErrDuplicateID)
}

// Build returns the accumulated envelopes in insertion order. The returned
// slice is a copy; calling Build again yields the same envelopes.
func (b *Builder) Build() []Envelope {
	return slices.Clone(b.envelopes)
}

// Len reports the number of accumulated envelopes.
func (b *Builder) Len() int {
	return len(b.envelopes)
}

// Reset discards every accumulated envelope and forgets used ids.
func (b *Builder) Reset() {
	b.envelopes = nil
	b.used = make(map[string]struct{})
}

func (b *Builder) ItemAdd(a ItemAddArgs) (Envelope, error)       { return b.Add(a) }
func (b *Builder) ItemUpdate(a ItemUpdateArgs) (Envelope, error) { return b.Add(a) }
func (b *Builder) ItemMove(a ItemMoveArgs) (Envelope, error)     { return b.Add(a) }

func (b *Builder) ItemClose(id string) (Envelope, error) {
	return b.Add(ItemCloseArgs{ID: id})
}

func (b *Builder) ItemComplete(id string) (Envelope, error) {
	return b.Add(ItemCompleteArgs{ID: id})
}

func (b *Builder) ItemReopen(id string) (Envelope, error) {
	return b.Add(ItemReopenArgs{ID: id})
}

func (b *Builder) ItemDelete(id string) (Envelope, error) {
	return b.Add(ItemDeleteArgs{ID: id})
}

func (b *Builder) ProjectAdd(a ProjectAddArgs) (Envelope, error)       { return b.Add(a) }
func (b *Builder) ProjectUpdate(a ProjectUpdateArgs) (Envelope, error) { return b.Add(a) }

func (b *Builder) ProjectDelete(id string) (Envelope, error) {
	return b.Add(ProjectDeleteArgs{ID: id})
}

func (b *Builder) SectionAdd(a SectionAddArgs) (Envelope, error)       { return b.Add(a) }
func (b *Builder) SectionUpdate(a SectionUpdateArgs) (Envelope, error) { return b.Add(a) }

func (b *Builder) SectionDelete(id string) (Envelope, error) {
	return b.Add(SectionDeleteArgs{ID: id})
}

func (b *Builder) SectionArchive(id string) (Envelope, error) {
	return b.Add(SectionArchiveArgs{ID: id})
}

func (b *Builder) SectionUnarchive(id string) (Envelope, error) {
	return b.Add(SectionUnarchiveArgs{ID: id})
}

func (b *Builder) SectionMove(id, projectID string) (Envelope, error) {
	return b.Add(SectionMoveArgs{ID: id, ProjectID: projectID})
}

func (b *Builder) SectionReorder(entries []OrderEntry) (Envelope, error) {
	return b.Add(SectionReorderArgs{Sections: slices.Clone(entries)})
}

func (b *Builder) LabelAdd(a LabelAddArgs) (Envelope, error)       { return b.Add(a) }
func (b *Builder) LabelUpdate(a LabelUpdateArgs) (Envelope, error) { return b.Add(a) }

func (b *Builder) LabelDelete(id string) (Envelope, error) {
	return b.Add(LabelDeleteArgs{ID: id})
}

func (b *Builder) FilterAdd(a FilterAddArgs) (Envelope, error)       { return b.Add(a) }
func (b *Builder) FilterUpdate(a FilterUpdateArgs) (Envelope, error) { return b.Add(a) }

func (b *Builder) FilterDelete(id string) (Envelope, error) {
	return b.Add(FilterDeleteArgs{ID: id})
}

func (b *Builder) FilterUpdateOrders(entries []OrderEntry) (Envelope, error) {
	return b.Add(FilterUpdateOrdersArgs{Filters: slices.Clone(entries)})
}
