// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-todo-sync/internal/app"
)

// runGet prints cached records, refreshing the cache first when it is stale.
func (a *App) runGet(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: get: expected a resource", app.ErrUsage)
	}

	what, rest := args[0], args[1:]
	switch what {
	case "tasks", "task", "projects", "sections", "labels", "filters":
	default:
		return fmt.Errorf("%w: get: unknown resource %q", app.ErrUsage, what)
	}

	fs := newFlagSet("get " + what)
	query := fs.String("query", "", "Keep tasks whose content or project name contains this text")
	projectID := fs.String("project-id", "", "Only sections of this project")
	if err := parseFlags(fs, rest); err != nil {
		return err
	}

	svcs, err := a.setup(ctx, true)
	if err != nil {
		return err
	}
	tasks := svcs.Tasks

	var out any
	switch what {
	case "tasks":
		out, err = tasks.GetTasks(ctx, *query)
	case "task":
		id, idErr := idArg(fs, "task")
		if idErr != nil {
			return idErr
		}
		out, err = tasks.GetTask(ctx, id)
	case "projects":
		out, err = tasks.GetProjects(ctx)
	case "sections":
		out, err = tasks.GetSections(ctx, *projectID)
	case "labels":
		out, err = tasks.GetLabels(ctx)
	case "filters":
		out, err = tasks.GetFilters(ctx)
	}
	if err != nil {
		return err
	}

	return a.printJSON(out)
}
