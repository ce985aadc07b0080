// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/MKhiriev/go-todo-sync/internal/adapter"
	"github.com/MKhiriev/go-todo-sync/internal/app"
	"github.com/MKhiriev/go-todo-sync/internal/command"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/service"
	"github.com/MKhiriev/go-todo-sync/internal/store"
	"github.com/MKhiriev/go-todo-sync/models"
)

const usage = `Usage: todosync [global flags] <command> [flags] [args]

Commands:
  version                                  print build information
  init --api-token TOKEN [--path FILE]     write the config file
  sync [--force] [--types all]             read sync and print the records
  cache status | clear                     inspect or drop the local cache
  watch [--types all] [--interval 5m]      refresh the cache until interrupted
  get tasks [--query Q] | task ID | projects | sections [--project-id ID] | labels | filters
  add task|project|section|label|filter [flags]
  update task|project|section|label|filter ID [flags]
  complete|close|reopen task ID
  delete task|project|section|label|filter ID
  archive|unarchive section ID
  move task ID [--project-id|--section-id|--parent-id ID] | section ID --project-id ID
  reorder sections|filters ID:ORDER...
  batch [--file FILE]                      submit a JSON array of commands ("-" reads stdin)

Run "todosync --help" for the global flags.
`

// App is the command line runtime. Services are built on the first command
// that needs them.
type App struct {
	cfg    *config.StructuredConfig
	info   models.AppBuildInfo
	logger *logger.Logger

	stdin  io.Reader
	stdout io.Writer
	fs     afero.Fs

	services *service.Services
	cache    store.CacheStore
}

// Option customizes an App.
type Option func(*App)

// WithIO replaces os.Stdin and os.Stdout.
func WithIO(stdin io.Reader, stdout io.Writer) Option {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
	}
}

// WithFs replaces the OS filesystem used for the cache file and batch files.
func WithFs(fs afero.Fs) Option {
	return func(a *App) {
		if fs != nil {
			a.fs = fs
		}
	}
}

func NewApp(cfg *config.StructuredConfig, info models.AppBuildInfo, log *logger.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrInvalidAppConfigs)
	}
	if log == nil {
		log = logger.Nop()
	}

	a := &App{
		cfg:    cfg,
		info:   info,
		logger: log,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		fs:     afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		_, _ = io.WriteString(a.stdout, usage)
		return fmt.Errorf("%w: no command given", app.ErrUsage)
	}

	cmd, rest := args[0], args[1:]
	log := a.logger.GetChildLogger()
	log.Logger = log.With().Str("command", cmd).Logger()
	ctx = log.WithContext(ctx)

	log.Debug().
		Str("func", "App.Run").
		Msg("running command")

	switch cmd {
	case "help", "-h", "--help":
		_, err := io.WriteString(a.stdout, usage)
		return err
	case "version":
		return a.printJSON(a.info)
	case "init":
		return a.runInit(rest)
	case "sync":
		return a.runSync(ctx, rest)
	case "cache":
		return a.runCache(ctx, rest)
	case "watch":
		return a.runWatch(ctx, rest)
	case "get":
		return a.runGet(ctx, rest)
	case "add":
		return a.runAdd(ctx, rest)
	case "update":
		return a.runUpdate(ctx, rest)
	case "complete", "close", "reopen", "delete", "archive", "unarchive":
		return a.runLifecycle(ctx, cmd, rest)
	case "move":
		return a.runMove(ctx, rest)
	case "reorder":
		return a.runReorder(ctx, rest)
	case "batch":
		return a.runBatch(ctx, rest)
	}

	return fmt.Errorf("%w: unknown command %q", app.ErrUsage, cmd)
}

// Close writes the metrics text file when one is configured and closes the
// cache store.
func (a *App) Close() error {
	if a.services == nil {
		return nil
	}

	var errs []error
	if path := a.cfg.Metrics.TextFile; path != "" {
		if err := a.services.Metrics.WriteTextfile(path); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	if err := a.cache.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close cache: %w", err))
	}

	return errors.Join(errs...)
}

// setup builds the adapter, the cache store and the services. Commands that
// never reach the server pass online=false and run without a token.
func (a *App) setup(ctx context.Context, online bool) (*service.Services, error) {
	if online {
		if err := a.cfg.RequireToken(); err != nil {
			return nil, err
		}
	}
	if a.services != nil {
		return a.services, nil
	}

	var syncAdapter adapter.SyncAdapter = offlineAdapter{}
	if strings.TrimSpace(a.cfg.App.APIToken) != "" {
		var err error
		syncAdapter, err = adapter.NewHTTPSyncAdapter(a.cfg.Adapter, a.cfg.App.APIToken, a.logger)
		if err != nil {
			return nil, fmt.Errorf("create sync adapter: %w", err)
		}
	}

	cache, err := store.NewCacheStore(ctx, a.cfg.Storage.Cache, a.fs, a.logger)
	if err != nil {
		return nil, fmt.Errorf("create cache store: %w", err)
	}

	a.cache = cache
	a.services = service.NewServices(syncAdapter, cache, *a.cfg, a.logger)

	a.logger.Debug().
		Str("func", "App.setup").
		Str("cache_driver", a.cfg.Storage.Cache.Driver).
		Bool("online", online).
		Msg("services ready")

	return a.services, nil
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// offlineAdapter stands in for the HTTP adapter when no token is configured.
// Only cache commands run with it, and they never call it.
type offlineAdapter struct{}

func (offlineAdapter) Read(context.Context, string, []models.ResourceType) (models.ReadResponse, error) {
	return models.ReadResponse{}, fmt.Errorf("%w: %w", config.ErrInvalidAppConfigs, config.ErrTokenNotConfigured)
}

func (offlineAdapter) Write(context.Context, string, []command.Envelope) (models.WriteResponse, error) {
	return models.WriteResponse{}, fmt.Errorf("%w: %w", config.ErrInvalidAppConfigs, config.ErrTokenNotConfigured)
}
