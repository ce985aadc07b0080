package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/MKhiriev/go-todo-sync/internal/app"
	"github.com/MKhiriev/go-todo-sync/internal/client"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, args, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return app.ExitOK
		}
		return fail(err)
	}

	logOut, closeLog, err := openLog(cfg.App.LogFile)
	if err != nil {
		return fail(err)
	}
	defer closeLog()

	log := logger.NewClientLogger("todosync", logOut, cfg.App.LogLevel)
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	cli, err := client.NewApp(cfg, info, log)
	if err != nil {
		return fail(err)
	}

	err = cli.Run(ctx, args)
	if closeErr := cli.Close(); closeErr != nil {
		log.Warn().Err(closeErr).Msg("shutdown")
	}
	if err != nil {
		log.Debug().Err(err).Str("class", app.Classify(err).String()).Msg("command failed")
		return fail(err)
	}

	return app.ExitOK
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, app.Message(err))
	return app.ExitCode(err)
}

func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: open log file: %w", config.ErrInvalidAppConfigs, err)
	}
	return f, func() { _ = f.Close() }, nil
}
