// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mapper converts wire records into the canonical domain model.
//
// The sync endpoint has shipped two spellings for several fields
// (checked/is_completed, added_at/created_at, child_order/order and so on).
// For each such field the current spelling is read first and the legacy one
// is used only when the current one is absent. Optional wire fields that are
// missing map to zero values; collections are never nil. Records flagged as
// deleted are dropped.
package mapper

import (
	"slices"

	"github.com/MKhiriev/go-todo-sync/models"
)

// first returns the value of the first non-nil pointer, or the zero value.
func first[T any](candidates ...*T) T {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	var zero T
	return zero
}

func Task(r models.SyncTask) models.Task {
	t := models.Task{
		ID:          r.ID,
		Content:     r.Content,
		Description: first(r.Description),
		ProjectID:   first(r.ProjectID),
		SectionID:   first(r.SectionID),
		ParentID:    first(r.ParentID),
		Priority:    r.Priority,
		Labels:      slices.Clone(r.Labels),
		Order:       first(r.Order, r.ChildOrder),
		IsCompleted: first(r.IsCompleted, r.Checked),
		CreatedAt:   first(r.CreatedAt, r.AddedAt),
		UpdatedAt:   r.UpdatedAt,
		CompletedAt: first(r.CompletedAt),
	}
	if t.Priority == 0 {
		t.Priority = 1
	}
	if t.Labels == nil {
		t.Labels = []string{}
	}
	if r.Due != nil {
		t.Due = &models.Due{
			Date:        first(r.Due.Date),
			Datetime:    first(r.Due.Datetime),
			String:      first(r.Due.String),
			Lang:        first(r.Due.Lang),
			Timezone:    first(r.Due.Timezone),
			IsRecurring: r.Due.IsRecurring,
		}
	}
	return t
}

func Project(r models.SyncProject) models.Project {
	return models.Project{
		ID:         r.ID,
		Name:       r.Name,
		Color:      r.Color,
		ParentID:   first(r.ParentID),
		ViewStyle:  r.ViewStyle,
		IsShared:   first(r.IsShared, r.Shared),
		IsFavorite: first(r.IsFavorite, r.Favorite),
		IsArchived: r.IsArchived,
		Order:      first(r.ChildOrder, r.SortOrder),
		CreatedAt:  first(r.CreatedAt, r.AddedAt),
		UpdatedAt:  r.UpdatedAt,
	}
}

func Section(r models.SyncSection) models.Section {
	return models.Section{
		ID:          r.ID,
		ProjectID:   r.ProjectID,
		Name:        r.Name,
		Order:       first(r.SectionOrder, r.Order),
		IsCollapsed: first(r.IsCollapsed, r.Collapsed),
		IsArchived:  r.IsArchived,
		ArchivedAt:  first(r.ArchivedAt),
		CreatedAt:   first(r.CreatedAt, r.AddedAt),
	}
}

func Label(r models.SyncLabel) models.Label {
	return models.Label{
		ID:         r.ID,
		Name:       r.Name,
		Color:      r.Color,
		IsFavorite: first(r.IsFavorite, r.Favorite),
		Order:      first(r.ItemOrder, r.Order),
	}
}

func Filter(r models.SyncFilter) models.Filter {
	return models.Filter{
		ID:         r.ID,
		Name:       r.Name,
		Query:      r.Query,
		Color:      r.Color,
		IsFavorite: first(r.IsFavorite, r.Favorite),
		Order:      first(r.ItemOrder, r.Order),
	}
}

// Tasks maps every live record. The result is empty, not nil, for empty input.
func Tasks(records []models.SyncTask) []models.Task {
	out := make([]models.Task, 0, len(records))
	for _, r := range records {
		if r.IsDeleted {
			continue
		}
		out = append(out, Task(r))
	}
	return out
}

func Projects(records []models.SyncProject) []models.Project {
	out := make([]models.Project, 0, len(records))
	for _, r := range records {
		if r.IsDeleted {
			continue
		}
		out = append(out, Project(r))
	}
	return out
}

func Sections(records []models.SyncSection) []models.Section {
	out := make([]models.Section, 0, len(records))
	for _, r := range records {
		if r.IsDeleted {
			continue
		}
		out = append(out, Section(r))
	}
	return out
}

func Labels(records []models.SyncLabel) []models.Label {
	out := make([]models.Label, 0, len(records))
	for _, r := range records {
		if r.IsDeleted {
			continue
		}
		out = append(out, Label(r))
	}
	return out
}

func Filters(records []models.SyncFilter) []models.Filter {
	out := make([]models.Filter, 0, len(records))
	for _, r := range records {
		if r.IsDeleted {
			continue
		}
		out = append(out, Filter(r))
	}
	return out
}

// Resources maps a whole cached data set.
func Resources(d models.CacheData) models.Resources {
	return models.Resources{
		Projects: Projects(d.Projects),
		Tasks:    Tasks(d.Items),
		Sections: Sections(d.Sections),
		Labels:   Labels(d.Labels),
		Filters:  Filters(d.Filters),
	}
}

// FromReadResponse maps the collections of one read response.
func FromReadResponse(resp models.ReadResponse) models.Resources {
	return Resources(models.CacheData{
		Projects: resp.Projects,
		Items:    resp.Items,
		Sections: resp.Sections,
		Labels:   resp.Labels,
		Filters:  resp.Filters,
	})
}
