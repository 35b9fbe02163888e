package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsdevblog/golinks/internal/app"
	"github.com/fsdevblog/golinks/internal/bmeta"
	"github.com/fsdevblog/golinks/internal/config"
	"github.com/fsdevblog/golinks/internal/logs"
)

// Задаются при сборке: go build -ldflags "-X main.buildVersion=v1.0.0 ...".
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const defaultLogLevel = "warning"

func main() {
	conf, args, err := config.LoadClientConfig(os.Args[1:])
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(2) //nolint:mnd
	}

	level := conf.LogLevel
	if level == "" {
		level = defaultLogLevel
	}
	logger := logs.MustNew(os.Stderr, logs.WithLevel(level))

	a := app.Must(app.New(*conf, func(o *app.Options) {
		o.Logger = logger
		o.Build = bmeta.Info{Version: buildVersion, Date: buildDate, Commit: buildCommit}
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	runErr := a.Run(ctx, args)
	stop()

	switch {
	case runErr == nil, errors.Is(runErr, context.Canceled):
	case errors.Is(runErr, app.ErrCommandFailed):
		os.Exit(1)
	default:
		_, _ = fmt.Fprintln(os.Stderr, "Error:", runErr)
		os.Exit(1)
	}
}
