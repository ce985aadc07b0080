// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/MKhiriev/go-todo-sync/internal/app"
	"github.com/MKhiriev/go-todo-sync/internal/command"
	"github.com/MKhiriev/go-todo-sync/internal/service"
)

// writeResult is printed after a single-command write.
type writeResult struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status"`
}

// textArg returns the flag value, or the positional arguments joined by
// spaces when the flag is empty.
func textArg(fs *pflag.FlagSet, name string) string {
	v, _ := fs.GetString(name)
	if v == "" && fs.NArg() > 0 {
		v = strings.Join(fs.Args(), " ")
	}
	return v
}

func (a *App) runAdd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: add: expected a resource", app.ErrUsage)
	}

	what, rest := args[0], args[1:]
	fs := newFlagSet("add " + what)
	switch what {
	case "task":
		fs.String("content", "", "Task content (or give it as arguments)")
		fs.String("description", "", "Task description")
		fs.String("project-id", "", "Project to add the task to")
		fs.String("section-id", "", "Section to add the task to")
		fs.String("parent-id", "", "Parent task")
		fs.String("due", "", "Due date in natural language, e.g. \"tomorrow 9am\"")
		fs.String("due-date", "", "Due date as YYYY-MM-DD")
		fs.Int("priority", 0, "Priority from 1 (normal) to 4 (urgent)")
		fs.StringSlice("labels", nil, "Label names")
	case "project":
		fs.String("name", "", "Project name (or give it as arguments)")
		fs.String("color", "", "Color name")
		fs.String("parent-id", "", "Parent project")
		fs.Bool("favorite", false, "Mark as favorite")
	case "section":
		fs.String("name", "", "Section name (or give it as arguments)")
		fs.String("project-id", "", "Project of the section")
	case "label":
		fs.String("name", "", "Label name (or give it as arguments)")
		fs.String("color", "", "Color name")
		fs.Bool("favorite", false, "Mark as favorite")
	case "filter":
		fs.String("name", "", "Filter name")
		fs.String("query", "", "Filter query, e.g. \"today | overdue\"")
		fs.String("color", "", "Color name")
		fs.Bool("favorite", false, "Mark as favorite")
	default:
		return fmt.Errorf("%w: add: unknown resource %q", app.ErrUsage, what)
	}
	if err := parseFlags(fs, rest); err != nil {
		return err
	}

	svcs, err := a.setup(ctx, true)
	if err != nil {
		return err
	}
	tasks := svcs.Tasks

	var id string
	switch what {
	case "task":
		itemArgs := command.ItemAddArgs{
			Content:     textArg(fs, "content"),
			Description: changedString(fs, "description"),
			ProjectID:   changedString(fs, "project-id"),
			SectionID:   changedString(fs, "section-id"),
			ParentID:    changedString(fs, "parent-id"),
			DueString:   changedString(fs, "due"),
			DueDate:     changedString(fs, "due-date"),
			Priority:    changedInt(fs, "priority"),
		}
		if labels := changedStrings(fs, "labels"); labels != nil {
			itemArgs.Labels = *labels
		}
		id, err = tasks.AddTask(ctx, itemArgs)
	case "project":
		id, err = tasks.AddProject(ctx, command.ProjectAddArgs{
			Name:     textArg(fs, "name"),
			Color:    changedString(fs, "color"),
			ParentID: changedString(fs, "parent-id"),
			Favorite: changedBool(fs, "favorite"),
		})
	case "section":
		projectID, _ := fs.GetString("project-id")
		id, err = tasks.AddSection(ctx, command.SectionAddArgs{
			Name:      textArg(fs, "name"),
			ProjectID: projectID,
		})
	case "label":
		id, err = tasks.AddLabel(ctx, command.LabelAddArgs{
			Name:       textArg(fs, "name"),
			Color:      changedString(fs, "color"),
			IsFavorite: changedBool(fs, "favorite"),
		})
	case "filter":
		name, _ := fs.GetString("name")
		query, _ := fs.GetString("query")
		id, err = tasks.AddFilter(ctx, command.FilterAddArgs{
			Name:       name,
			Query:      query,
			Color:      changedString(fs, "color"),
			IsFavorite: changedBool(fs, "favorite"),
		})
	}
	if err != nil {
		return err
	}

	return a.printJSON(writeResult{ID: id, Status: "created"})
}

func (a *App) runUpdate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: update: expected a resource", app.ErrUsage)
	}

	what, rest := args[0], args[1:]
	fs := newFlagSet("update " + what)
	switch what {
	case "task":
		fs.String("content", "", "New content")
		fs.String("description", "", "New description")
		fs.String("due", "", "Due date in natural language")
		fs.String("due-date", "", "Due date as YYYY-MM-DD")
		fs.Int("priority", 0, "Priority from 1 (normal) to 4 (urgent)")
		fs.StringSlice("labels", nil, "Replace the labels")
	case "project":
		fs.String("name", "", "New name")
		fs.String("color", "", "Color name")
		fs.Bool("favorite", false, "Favorite flag")
	case "section":
		fs.String("name", "", "New name")
		fs.Bool("collapsed", false, "Collapsed flag")
	case "label":
		fs.String("name", "", "New name")
		fs.String("color", "", "Color name")
		fs.Int64("order", 0, "Position in the label list")
		fs.Bool("favorite", false, "Favorite flag")
	case "filter":
		fs.String("name", "", "New name")
		fs.String("query", "", "New query")
		fs.String("color", "", "Color name")
		fs.Int64("order", 0, "Position in the filter list")
		fs.Bool("favorite", false, "Favorite flag")
	default:
		return fmt.Errorf("%w: update: unknown resource %q", app.ErrUsage, what)
	}
	if err := parseFlags(fs, rest); err != nil {
		return err
	}
	id, err := idArg(fs, what)
	if err != nil {
		return err
	}

	svcs, err := a.setup(ctx, true)
	if err != nil {
		return err
	}
	tasks := svcs.Tasks

	switch what {
	case "task":
		err = tasks.UpdateTask(ctx, command.ItemUpdateArgs{
			ID:          id,
			Content:     changedString(fs, "content"),
			Description: changedString(fs, "description"),
			DueString:   changedString(fs, "due"),
			DueDate:     changedString(fs, "due-date"),
			Priority:    changedInt(fs, "priority"),
			Labels:      changedStrings(fs, "labels"),
		})
	case "project":
		err = tasks.UpdateProject(ctx, command.ProjectUpdateArgs{
			ID:       id,
			Name:     changedString(fs, "name"),
			Color:    changedString(fs, "color"),
			Favorite: changedBool(fs, "favorite"),
		})
	case "section":
		err = tasks.UpdateSection(ctx, command.SectionUpdateArgs{
			ID:        id,
			Name:      changedString(fs, "name"),
			Collapsed: changedBool(fs, "collapsed"),
		})
	case "label":
		err = tasks.UpdateLabel(ctx, command.LabelUpdateArgs{
			ID:         id,
			Name:       changedString(fs, "name"),
			Color:      changedString(fs, "color"),
			ItemOrder:  changedInt64(fs, "order"),
			IsFavorite: changedBool(fs, "favorite"),
		})
	case "filter":
		err = tasks.UpdateFilter(ctx, command.FilterUpdateArgs{
			ID:         id,
			Name:       changedString(fs, "name"),
			Query:      changedString(fs, "query"),
			Color:      changedString(fs, "color"),
			ItemOrder:  changedInt64(fs, "order"),
			IsFavorite: changedBool(fs, "favorite"),
		})
	}
	if err != nil {
		return err
	}

	return a.printJSON(writeResult{ID: id, Status: "updated"})
}

type lifecycleOp struct {
	run    func(service.TaskService, context.Context, string) error
	status string
}

var lifecycleOps = map[string]lifecycleOp{
	"complete task":     {service.TaskService.CompleteTask, "completed"},
	"close task":        {service.TaskService.CloseTask, "closed"},
	"reopen task":       {service.TaskService.ReopenTask, "reopened"},
	"delete task":       {service.TaskService.DeleteTask, "deleted"},
	"delete project":    {service.TaskService.DeleteProject, "deleted"},
	"delete section":    {service.TaskService.DeleteSection, "deleted"},
	"delete label":      {service.TaskService.DeleteLabel, "deleted"},
	"delete filter":     {service.TaskService.DeleteFilter, "deleted"},
	"archive section":   {service.TaskService.ArchiveSection, "archived"},
	"unarchive section": {service.TaskService.UnarchiveSection, "unarchived"},
}

// runLifecycle handles the single-id commands: complete, close, reopen,
// delete, archive and unarchive.
func (a *App) runLifecycle(ctx context.Context, verb string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: %s: expected a resource", app.ErrUsage, verb)
	}

	name := verb + " " + args[0]
	op, ok := lifecycleOps[name]
	if !ok {
		return fmt.Errorf("%w: cannot %s", app.ErrUsage, name)
	}

	fs := newFlagSet(name)
	if err := parseFlags(fs, args[1:]); err != nil {
		return err
	}
	id, err := idArg(fs, args[0])
	if err != nil {
		return err
	}

	svcs, err := a.setup(ctx, true)
	if err != nil {
		return err
	}
	if err = op.run(svcs.Tasks, ctx, id); err != nil {
		return err
	}

	return a.printJSON(writeResult{ID: id, Status: op.status})
}

func (a *App) runMove(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: move: expected task or section", app.ErrUsage)
	}

	what := args[0]
	if what != "task" && what != "section" {
		return fmt.Errorf("%w: move: unknown resource %q", app.ErrUsage, what)
	}

	fs := newFlagSet("move " + what)
	fs.String("project-id", "", "Target project")
	if what == "task" {
		fs.String("section-id", "", "Target section")
		fs.String("parent-id", "", "Target parent task")
	}
	if err := parseFlags(fs, args[1:]); err != nil {
		return err
	}
	id, err := idArg(fs, what)
	if err != nil {
		return err
	}

	svcs, err := a.setup(ctx, true)
	if err != nil {
		return err
	}

	if what == "task" {
		err = svcs.Tasks.MoveTask(ctx, command.ItemMoveArgs{
			ID:        id,
			ProjectID: changedString(fs, "project-id"),
			SectionID: changedString(fs, "section-id"),
			ParentID:  changedString(fs, "parent-id"),
		})
	} else {
		projectID, _ := fs.GetString("project-id")
		err = svcs.Tasks.MoveSection(ctx, id, projectID)
	}
	if err != nil {
		return err
	}

	return a.printJSON(writeResult{ID: id, Status: "moved"})
}

func (a *App) runReorder(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: reorder: expected sections or filters and ID:ORDER pairs", app.ErrUsage)
	}

	what := args[0]
	if what != "sections" && what != "filters" {
		return fmt.Errorf("%w: reorder: unknown resource %q", app.ErrUsage, what)
	}

	entries, err := parseOrder(args[1:])
	if err != nil {
		return err
	}

	svcs, err := a.setup(ctx, true)
	if err != nil {
		return err
	}

	if what == "sections" {
		err = svcs.Tasks.ReorderSections(ctx, entries)
	} else {
		err = svcs.Tasks.ReorderFilters(ctx, entries)
	}
	if err != nil {
		return err
	}

	return a.printJSON(writeResult{Status: "reordered"})
}

// runBatch submits a JSON array of commands as one round trip and prints the
// per-command outcomes. The outcomes are printed even when some commands
// failed, since the others were applied.
func (a *App) runBatch(ctx context.Context, args []string) error {
	fs := newFlagSet("batch")
	file := fs.StringP("file", "f", "-", "JSON file with the commands; - reads stdin")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var r io.Reader = a.stdin
	if *file != "-" {
		f, err := a.fs.Open(*file)
		if err != nil {
			return fmt.Errorf("%w: batch: %v", app.ErrUsage, err)
		}
		defer f.Close()
		r = f
	}

	b := command.NewBuilder(nil)
	if err := command.DecodeBatch(r, b); err != nil {
		return err
	}

	svcs, err := a.setup(ctx, true)
	if err != nil {
		return err
	}

	res, err := svcs.Tasks.ExecuteBatch(ctx, b)
	if res.Outcomes != nil {
		if printErr := a.printJSON(res); printErr != nil {
			return errors.Join(err, printErr)
		}
	}

	return err
}
