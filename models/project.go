// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Project is the canonical project record.
type Project struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color,omitempty"`
	ParentID   string `json:"parent_id,omitempty"`
	ViewStyle  string `json:"view_style,omitempty"`
	IsShared   bool   `json:"is_shared"`
	IsFavorite bool   `json:"is_favorite"`
	IsArchived bool   `json:"is_archived"`
	Order      int64  `json:"order"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// Section is the canonical section record. A section always belongs to
// exactly one project.
type Section struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	Order       int64  `json:"order"`
	IsCollapsed bool   `json:"is_collapsed"`
	IsArchived  bool   `json:"is_archived"`
	ArchivedAt  string `json:"archived_at,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Label is the canonical personal label record.
type Label struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color,omitempty"`
	IsFavorite bool   `json:"is_favorite"`
	Order      int64  `json:"order"`
}

// Filter is the canonical saved filter record.
type Filter struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Query      string `json:"query"`
	Color      string `json:"color,omitempty"`
	IsFavorite bool   `json:"is_favorite"`
	Order      int64  `json:"order"`
}

// Resources bundles the canonical collections produced by one read.
// Collections that were not requested stay empty, never nil.
type Resources struct {
	Projects []Project `json:"projects"`
	Tasks    []Task    `json:"items"`
	Sections []Section `json:"sections"`
	Labels   []Label   `json:"labels"`
	Filters  []Filter  `json:"filters"`
}
