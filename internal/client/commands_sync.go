// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/app"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/service"
	"github.com/MKhiriev/go-todo-sync/internal/workers"
	"github.com/MKhiriev/go-todo-sync/models"
)

func (a *App) runInit(args []string) error {
	fs := newFlagSet("init")
	token := fs.String("api-token", "", "API token to store")
	path := fs.String("path", "", "Config file to write (default: the per-user config directory)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *token == "" {
		*token = a.cfg.App.APIToken
	}
	if *path == "" {
		*path = a.cfg.JSONFilePath
	}
	if *path == "" {
		*path = config.DefaultConfigPath()
	}

	if err := config.InitJSON(*path, *token); err != nil {
		return err
	}

	a.logger.Info().
		Str("func", "App.runInit").
		Str("path", *path).
		Msg("config file written")

	return a.printJSON(map[string]string{"config_path": *path})
}

func (a *App) runSync(ctx context.Context, args []string) error {
	fs := newFlagSet("sync")
	force := fs.Bool("force", false, "Ignore the held token and rebuild the cache")
	types := fs.StringSlice("types", []string{string(models.ResourceAll)}, "Resource types to sync")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	kinds, err := parseKinds(*types)
	if err != nil {
		return err
	}

	svcs, err := a.setup(ctx, true)
	if err != nil {
		return err
	}

	var res models.Resources
	if *force {
		res, err = svcs.Engine.FullSync(ctx, kinds)
	} else {
		res, err = svcs.Engine.ReadSync(ctx, kinds)
	}
	if err != nil {
		return err
	}

	return a.printJSON(res)
}

func (a *App) runCache(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: cache: expected status or clear", app.ErrUsage)
	}

	svcs, err := a.setup(ctx, false)
	if err != nil {
		return err
	}

	switch args[0] {
	case "status":
		status, err := svcs.Engine.CacheStatus(ctx)
		if err != nil {
			return err
		}
		return a.printJSON(status)

	case "clear":
		if err = svcs.Engine.ClearCache(ctx); err != nil {
			return err
		}
		return a.printJSON(map[string]bool{"cleared": true})
	}

	return fmt.Errorf("%w: cache: unknown subcommand %q", app.ErrUsage, args[0])
}

// refreshLine is printed once per refresh by watch.
type refreshLine struct {
	Time    string                      `json:"time"`
	Records map[models.ResourceType]int `json:"records,omitempty"`
	Error   string                      `json:"error,omitempty"`
}

func (a *App) runWatch(ctx context.Context, args []string) error {
	fs := newFlagSet("watch")
	types := fs.StringSlice("types", []string{string(models.ResourceAll)}, "Resource types to refresh")
	interval := fs.Duration("interval", a.cfg.Workers.RefreshInterval, "Refresh interval")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *interval <= 0 {
		return fmt.Errorf("%w: watch: interval must be positive", app.ErrUsage)
	}

	kinds, err := parseKinds(*types)
	if err != nil {
		return err
	}

	svcs, err := a.setup(ctx, true)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(a.stdout)
	job := service.NewRefreshJob(svcs.Engine, kinds, *interval, a.logger, func(res models.Resources, err error) {
		line := refreshLine{Time: time.Now().UTC().Format(time.RFC3339)}
		if err != nil {
			line.Error = app.Message(err)
		} else {
			line.Records = countRecords(res, kinds)
		}
		if encErr := enc.Encode(line); encErr != nil {
			a.logger.Err(encErr).Str("func", "App.runWatch").Msg("print refresh")
		}
	})

	a.logger.Info().
		Str("func", "App.runWatch").
		Dur("interval", *interval).
		Msg("watching")

	return workers.NewWorkers(job).Run(ctx)
}

func countRecords(res models.Resources, kinds []models.ResourceType) map[models.ResourceType]int {
	counts := make(map[models.ResourceType]int, len(models.AllResourceTypes))
	for _, kind := range models.ExpandResourceTypes(kinds) {
		switch kind {
		case models.ResourceProjects:
			counts[kind] = len(res.Projects)
		case models.ResourceItems:
			counts[kind] = len(res.Tasks)
		case models.ResourceSections:
			counts[kind] = len(res.Sections)
		case models.ResourceLabels:
			counts[kind] = len(res.Labels)
		case models.ResourceFilters:
			counts[kind] = len(res.Filters)
		}
	}
	return counts
}
