// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package command builds the mutating commands submitted to the sync
// endpoint.
//
// Every command travels as an [Envelope]: a command type, a client-generated
// correlation id (uuid), a placeholder id (temp_id) for commands that create a
// record, and a strongly typed argument struct implementing [Args]. The
// argument structs are the only place where optional fields are modelled;
// unset optional fields are never serialised, so the server can tell
// "absent" from "cleared".
//
// A [Builder] accumulates envelopes for a single round trip in submission
// order.
package command

// Type is the command name understood by the sync endpoint.
type Type string

const (
	TypeItemAdd      Type = "item_add"
	TypeItemUpdate   Type = "item_update"
	TypeItemClose    Type = "item_close"
	TypeItemComplete Type = "item_complete"
	TypeItemReopen   Type = "item_reopen"
	TypeItemDelete   Type = "item_delete"
	TypeItemMove     Type = "item_move"

	TypeProjectAdd    Type = "project_add"
	TypeProjectUpdate Type = "project_update"
	TypeProjectDelete Type = "project_delete"

	TypeSectionAdd       Type = "section_add"
	TypeSectionUpdate    Type = "section_update"
	TypeSectionDelete    Type = "section_delete"
	TypeSectionArchive   Type = "section_archive"
	TypeSectionUnarchive Type = "section_unarchive"
	TypeSectionMove      Type = "section_move"
	TypeSectionReorder   Type = "section_reorder"

	TypeLabelAdd    Type = "label_add"
	TypeLabelUpdate Type = "label_update"
	TypeLabelDelete Type = "label_delete"

	TypeFilterAdd          Type = "filter_add"
	TypeFilterUpdate       Type = "filter_update"
	TypeFilterDelete       Type = "filter_delete"
	TypeFilterUpdateOrders Type = "filter_update_orders"
)

// IsCreation reports whether commands of this type create a record and
// therefore carry a placeholder id.
func (t Type) IsCreation() bool {
	switch t {
	case TypeItemAdd, TypeProjectAdd, TypeSectionAdd, TypeLabelAdd, TypeFilterAdd:
		return true
	}
	return false
}

// Args is implemented by the argument struct of every command type.
// The interface is sealed: only this package can add variants.
type Args interface {
	// Type returns the command type the arguments belong to.
	Type() Type

	validate() error
}
