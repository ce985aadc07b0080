// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// The Sync* types mirror the records exactly as the sync endpoint sends them.
// Two API generations name several fields differently; each spelling is kept
// as its own optional field and resolved by the mapper package, so nothing
// here decides which spelling wins.

// SyncDue is the wire form of a due date.
type SyncDue struct {
	Date        *string `json:"date,omitempty"`
	Datetime    *string `json:"datetime,omitempty"`
	String      *string `json:"string,omitempty"`
	Lang        *string `json:"lang,omitempty"`
	Timezone    *string `json:"timezone,omitempty"`
	IsRecurring bool    `json:"is_recurring,omitempty"`
}

// SyncTask is the wire form of a task ("item" in the protocol).
type SyncTask struct {
	ID          string   `json:"id"`
	ProjectID   *string  `json:"project_id,omitempty"`
	SectionID   *string  `json:"section_id,omitempty"`
	ParentID    *string  `json:"parent_id,omitempty"`
	Content     string   `json:"content"`
	Description *string  `json:"description,omitempty"`
	Priority    int      `json:"priority,omitempty"`
	Due         *SyncDue `json:"due,omitempty"`
	Labels      []string `json:"labels,omitempty"`

	Order      *int64 `json:"order,omitempty"`
	ChildOrder *int64 `json:"child_order,omitempty"`

	IsCompleted *bool `json:"is_completed,omitempty"`
	Checked     *bool `json:"checked,omitempty"`

	CreatedAt *string `json:"created_at,omitempty"`
	AddedAt   *string `json:"added_at,omitempty"`

	UpdatedAt   string  `json:"updated_at,omitempty"`
	CompletedAt *string `json:"completed_at,omitempty"`
	IsArchived  bool    `json:"is_archived,omitempty"`
	IsDeleted   bool    `json:"is_deleted,omitempty"`
}

// SyncProject is the wire form of a project.
type SyncProject struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Color     string  `json:"color,omitempty"`
	ParentID  *string `json:"parent_id,omitempty"`
	ViewStyle string  `json:"view_style,omitempty"`

	Shared   *bool `json:"shared,omitempty"`
	IsShared *bool `json:"is_shared,omitempty"`

	Favorite   *bool `json:"favorite,omitempty"`
	IsFavorite *bool `json:"is_favorite,omitempty"`

	SortOrder  *int64 `json:"sort_order,omitempty"`
	ChildOrder *int64 `json:"child_order,omitempty"`

	CreatedAt *string `json:"created_at,omitempty"`
	AddedAt   *string `json:"added_at,omitempty"`

	UpdatedAt  string `json:"updated_at,omitempty"`
	IsArchived bool   `json:"is_archived,omitempty"`
	IsDeleted  bool   `json:"is_deleted,omitempty"`
}

// SyncSection is the wire form of a project section.
type SyncSection struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`

	Order        *int64 `json:"order,omitempty"`
	SectionOrder *int64 `json:"section_order,omitempty"`

	IsCollapsed *bool `json:"is_collapsed,omitempty"`
	Collapsed   *bool `json:"collapsed,omitempty"`

	CreatedAt *string `json:"created_at,omitempty"`
	AddedAt   *string `json:"added_at,omitempty"`

	ArchivedAt *string `json:"archived_at,omitempty"`
	IsArchived bool    `json:"is_archived,omitempty"`
	IsDeleted  bool    `json:"is_deleted,omitempty"`
}

// SyncLabel is the wire form of a personal label.
type SyncLabel struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`

	IsFavorite *bool `json:"is_favorite,omitempty"`
	Favorite   *bool `json:"favorite,omitempty"`

	Order     *int64 `json:"order,omitempty"`
	ItemOrder *int64 `json:"item_order,omitempty"`

	IsDeleted bool `json:"is_deleted,omitempty"`
}

// SyncFilter is the wire form of a saved filter.
type SyncFilter struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Query string `json:"query"`
	Color string `json:"color,omitempty"`

	IsFavorite *bool `json:"is_favorite,omitempty"`
	Favorite   *bool `json:"favorite,omitempty"`

	Order     *int64 `json:"order,omitempty"`
	ItemOrder *int64 `json:"item_order,omitempty"`

	IsDeleted bool `json:"is_deleted,omitempty"`
}
