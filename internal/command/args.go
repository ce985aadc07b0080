// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package command

import (
	"fmt"
	"strings"
)

// ── Items ───────────────────────────────────────────────────────────────────

// ItemAddArgs creates a task.
type ItemAddArgs struct {
	Content     string   `json:"content"`
	Description *string  `json:"description,omitempty"`
	ProjectID   *string  `json:"project_id,omitempty"`
	SectionID   *string  `json:"section_id,omitempty"`
	ParentID    *string  `json:"parent_id,omitempty"`
	DueString   *string  `json:"due_string,omitempty"`
	DueDate     *string  `json:"due_date,omitempty"`
	DueDatetime *string  `json:"due_datetime,omitempty"`
	DueLang     *string  `json:"due_lang,omitempty"`
	Priority    *int     `json:"priority,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	ChildOrder  *int64   `json:"child_order,omitempty"`
}

func (ItemAddArgs) Type() Type { return TypeItemAdd }

func (a ItemAddArgs) validate() error {
	if strings.TrimSpace(a.Content) == "" {
		return missing("content")
	}
	if err := validOptionalID("project_id", a.ProjectID); err != nil {
		return err
	}
	if err := validOptionalID("section_id", a.SectionID); err != nil {
		return err
	}
	if err := validOptionalID("parent_id", a.ParentID); err != nil {
		return err
	}
	return validPriority(a.Priority)
}

// ItemUpdateArgs changes fields of an existing task. Labels replaces the
// whole label set when set; a pointer to an empty slice clears it.
type ItemUpdateArgs struct {
	ID          string    `json:"id"`
	Content     *string   `json:"content,omitempty"`
	Description *string   `json:"description,omitempty"`
	DueString   *string   `json:"due_string,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
	DueDatetime *string   `json:"due_datetime,omitempty"`
	DueLang     *string   `json:"due_lang,omitempty"`
	Priority    *int      `json:"priority,omitempty"`
	Labels      *[]string `json:"labels,omitempty"`
}

func (ItemUpdateArgs) Type() Type { return TypeItemUpdate }

func (a ItemUpdateArgs) validate() error {
	if err := requireID("id", a.ID); err != nil {
		return err
	}
	if a.Content != nil && strings.TrimSpace(*a.Content) == "" {
		return fmt.Errorf("%w: content must not be blank", ErrInvalidArgument)
	}
	if a.Content == nil && a.Description == nil && a.DueString == nil && a.DueDate == nil &&
		a.DueDatetime == nil && a.DueLang == nil && a.Priority == nil && a.Labels == nil {
		return ErrNothingToUpdate
	}
	return validPriority(a.Priority)
}

// ItemCloseArgs closes a task the way the official clients do: recurring
// tasks move to their next occurrence, others are completed.
type ItemCloseArgs struct {
	ID string `json:"id"`
}

func (ItemCloseArgs) Type() Type        { return TypeItemClose }
func (a ItemCloseArgs) validate() error { return requireID("id", a.ID) }

// ItemCompleteArgs completes a task together with its sub-tasks.
type ItemCompleteArgs struct {
	ID            string  `json:"id"`
	DateCompleted *string `json:"date_completed,omitempty"`
}

func (ItemCompleteArgs) Type() Type        { return TypeItemComplete }
func (a ItemCompleteArgs) validate() error { return requireID("id", a.ID) }

// ItemReopenArgs marks a completed task as open again.
type ItemReopenArgs struct {
	ID string `json:"id"`
}

func (ItemReopenArgs) Type() Type        { return TypeItemReopen }
func (a ItemReopenArgs) validate() error { return requireID("id", a.ID) }

// ItemDeleteArgs deletes a task and its sub-tasks.
type ItemDeleteArgs struct {
	ID string `json:"id"`
}

func (ItemDeleteArgs) Type() Type        { return TypeItemDelete }
func (a ItemDeleteArgs) validate() error { return requireID("id", a.ID) }

// ItemMoveArgs moves a task. At least one destination must be set and every
// destination that is set is sent.
type ItemMoveArgs struct {
	ID        string  `json:"id"`
	ProjectID *string `json:"project_id,omitempty"`
	SectionID *string `json:"section_id,omitempty"`
	ParentID  *string `json:"parent_id,omitempty"`
}

func (ItemMoveArgs) Type() Type { return TypeItemMove }

func (a ItemMoveArgs) validate() error {
	if err := requireID("id", a.ID); err != nil {
		return err
	}
	if a.ProjectID == nil && a.SectionID == nil && a.ParentID == nil {
		return missing("project_id, section_id or parent_id")
	}
	for field, v := range map[string]*string{
		"project_id": a.ProjectID,
		"section_id": a.SectionID,
		"parent_id":  a.ParentID,
	} {
		if err := validOptionalID(field, v); err != nil {
			return err
		}
	}
	return nil
}

// ── Projects ────────────────────────────────────────────────────────────────

// ProjectAddArgs creates a project.
type ProjectAddArgs struct {
	Name      string  `json:"name"`
	Color     *string `json:"color,omitempty"`
	ParentID  *string `json:"parent_id,omitempty"`
	ViewStyle *string `json:"view_style,omitempty"`
	Favorite  *bool   `json:"is_favorite,omitempty"`
}

func (ProjectAddArgs) Type() Type { return TypeProjectAdd }

func (a ProjectAddArgs) validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return missing("name")
	}
	return validOptionalID("parent_id", a.ParentID)
}

// ProjectUpdateArgs changes fields of an existing project.
type ProjectUpdateArgs struct {
	ID        string  `json:"id"`
	Name      *string `json:"name,omitempty"`
	Color     *string `json:"color,omitempty"`
	ViewStyle *string `json:"view_style,omitempty"`
	Favorite  *bool   `json:"is_favorite,omitempty"`
}

func (ProjectUpdateArgs) Type() Type { return TypeProjectUpdate }

func (a ProjectUpdateArgs) validate() error {
	if err := requireID("id", a.ID); err != nil {
		return err
	}
	if a.Name != nil && strings.TrimSpace(*a.Name) == "" {
		return fmt.Errorf("%w: name must not be blank", ErrInvalidArgument)
	}
	if a.Name == nil && a.Color == nil && a.ViewStyle == nil && a.Favorite == nil {
		return ErrNothingToUpdate
	}
	return nil
}

// ProjectDeleteArgs deletes a project with everything it contains.
type ProjectDeleteArgs struct {
	ID string `json:"id"`
}

func (ProjectDeleteArgs) Type() Type        { return TypeProjectDelete }
func (a ProjectDeleteArgs) validate() error { return requireID("id", a.ID) }

// ── Sections ────────────────────────────────────────────────────────────────

// SectionAddArgs creates a section inside a project.
type SectionAddArgs struct {
	Name         string `json:"name"`
	ProjectID    string `json:"project_id"`
	SectionOrder *int64 `json:"section_order,omitempty"`
}

func (SectionAddArgs) Type() Type { return TypeSectionAdd }

func (a SectionAddArgs) validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return missing("name")
	}
	return requireID("project_id", a.ProjectID)
}

// SectionUpdateArgs renames or collapses a section.
type SectionUpdateArgs struct {
	ID        string  `json:"id"`
	Name      *string `json:"name,omitempty"`
	Collapsed *bool   `json:"collapsed,omitempty"`
}

func (SectionUpdateArgs) Type() Type { return TypeSectionUpdate }

func (a SectionUpdateArgs) validate() error {
	if err := requireID("id", a.ID); err != nil {
		return err
	}
	if a.Name != nil && strings.TrimSpace(*a.Name) == "" {
		return fmt.Errorf("%w: name must not be blank", ErrInvalidArgument)
	}
	if a.Name == nil && a.Collapsed == nil {
		return ErrNothingToUpdate
	}
	return nil
}

// SectionDeleteArgs deletes a section and its tasks.
type SectionDeleteArgs struct {
	ID string `json:"id"`
}

func (SectionDeleteArgs) Type() Type        { return TypeSectionDelete }
func (a SectionDeleteArgs) validate() error { return requireID("id", a.ID) }

// SectionArchiveArgs archives a section.
type SectionArchiveArgs struct {
	ID string `json:"id"`
}

func (SectionArchiveArgs) Type() Type        { return TypeSectionArchive }
func (a SectionArchiveArgs) validate() error { return requireID("id", a.ID) }

// SectionUnarchiveArgs restores an archived section.
type SectionUnarchiveArgs struct {
	ID string `json:"id"`
}

func (SectionUnarchiveArgs) Type() Type        { return TypeSectionUnarchive }
func (a SectionUnarchiveArgs) validate() error { return requireID("id", a.ID) }

// SectionMoveArgs moves a section to another project.
type SectionMoveArgs struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
}

func (SectionMoveArgs) Type() Type { return TypeSectionMove }

func (a SectionMoveArgs) validate() error {
	if err := requireID("id", a.ID); err != nil {
		return err
	}
	return requireID("project_id", a.ProjectID)
}

// OrderEntry assigns a position to one record in a reorder command.
type OrderEntry struct {
	ID    string `json:"id"`
	Order int64  `json:"order"`
}

// SectionReorderArgs assigns new positions to several sections at once.
type SectionReorderArgs struct {
	Sections []OrderEntry `json:"sections"`
}

func (SectionReorderArgs) Type() Type        { return TypeSectionReorder }
func (a SectionReorderArgs) validate() error { return validOrder("sections", a.Sections) }

// ── Labels ──────────────────────────────────────────────────────────────────

// LabelAddArgs creates a personal label.
type LabelAddArgs struct {
	Name       string  `json:"name"`
	Color      *string `json:"color,omitempty"`
	ItemOrder  *int64  `json:"item_order,omitempty"`
	IsFavorite *bool   `json:"is_favorite,omitempty"`
}

func (LabelAddArgs) Type() Type { return TypeLabelAdd }

func (a LabelAddArgs) validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return missing("name")
	}
	return nil
}

// LabelUpdateArgs changes fields of an existing label.
type LabelUpdateArgs struct {
	ID         string  `json:"id"`
	Name       *string `json:"name,omitempty"`
	Color      *string `json:"color,omitempty"`
	ItemOrder  *int64  `json:"item_order,omitempty"`
	IsFavorite *bool   `json:"is_favorite,omitempty"`
}

func (LabelUpdateArgs) Type() Type { return TypeLabelUpdate }

func (a LabelUpdateArgs) validate() error {
	if err := requireID("id", a.ID); err != nil {
		return err
	}
	if a.Name != nil && strings.TrimSpace(*a.Name) == "" {
		return fmt.Errorf("%w: name must not be blank", ErrInvalidArgument)
	}
	if a.Name == nil && a.Color == nil && a.ItemOrder == nil && a.IsFavorite == nil {
		return ErrNothingToUpdate
	}
	return nil
}

// LabelDeleteArgs deletes a label.
type LabelDeleteArgs struct {
	ID string `json:"id"`
}

func (LabelDeleteArgs) Type() Type        { return TypeLabelDelete }
func (a LabelDeleteArgs) validate() error { return requireID("id", a.ID) }

// ── Filters ─────────────────────────────────────────────────────────────────

// FilterAddArgs creates a saved filter.
type FilterAddArgs struct {
	Name       string  `json:"name"`
	Query      string  `json:"query"`
	Color      *string `json:"color,omitempty"`
	ItemOrder  *int64  `json:"item_order,omitempty"`
	IsFavorite *bool   `json:"is_favorite,omitempty"`
}

func (FilterAddArgs) Type() Type { return TypeFilterAdd }

func (a FilterAddArgs) validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return missing("name")
	}
	if strings.TrimSpace(a.Query) == "" {
		return missing("query")
	}
	return nil
}

// FilterUpdateArgs changes fields of an existing filter.
type FilterUpdateArgs struct {
	ID         string  `json:"id"`
	Name       *string `json:"name,omitempty"`
	Query      *string `json:"query,omitempty"`
	Color      *string `json:"color,omitempty"`
	ItemOrder  *int64  `json:"item_order,omitempty"`
	IsFavorite *bool   `json:"is_favorite,omitempty"`
}

func (FilterUpdateArgs) Type() Type { return TypeFilterUpdate }

func (a FilterUpdateArgs) validate() error {
	if err := requireID("id", a.ID); err != nil {
		return err
	}
	if a.Name != nil && strings.TrimSpace(*a.Name) == "" {
		return fmt.Errorf("%w: name must not be blank", ErrInvalidArgument)
	}
	if a.Query != nil && strings.TrimSpace(*a.Query) == "" {
		return fmt.Errorf("%w: query must not be blank", ErrInvalidArgument)
	}
	if a.Name == nil && a.Query == nil && a.Color == nil && a.ItemOrder == nil && a.IsFavorite == nil {
		return ErrNothingToUpdate
	}
	return nil
}

// FilterDeleteArgs deletes a filter.
type FilterDeleteArgs struct {
	ID string `json:"id"`
}

func (FilterDeleteArgs) Type() Type        { return TypeFilterDelete }
func (a FilterDeleteArgs) validate() error { return requireID("id", a.ID) }

// FilterUpdateOrdersArgs assigns new positions to several filters at once.
type FilterUpdateOrdersArgs struct {
	Filters []OrderEntry `json:"filters"`
}

func (FilterUpdateOrdersArgs) Type() Type        { return TypeFilterUpdateOrders }
func (a FilterUpdateOrdersArgs) validate() error { return validOrder("filters", a.Filters) }

// ── helpers ─────────────────────────────────────────────────────────────────

func missing(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingArgument, field)
}

func requireID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return missing(field)
	}
	return nil
}

func validOptionalID(field string, id *string) error {
	if id != nil && strings.TrimSpace(*id) == "" {
		return fmt.Errorf("%w: %s must not be blank", ErrInvalidArgument, field)
	}
	return nil
}

func validPriority(p *int) error {
	if p != nil && (*p < 1 || *p > 4) {
		return fmt.Errorf("%w: priority %d is outside 1..4", ErrInvalidArgument, *p)
	}
	return nil
}

func validOrder(field string, entries []OrderEntry) error {
	if len(entries) == 0 {
		return missing(field)
	}
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if err := requireID(field+".id", e.ID); err != nil {
			return err
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: %s lists %q twice", ErrInvalidArgument, field, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}
