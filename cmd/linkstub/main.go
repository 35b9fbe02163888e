package main

import (
	"context"
	"errors"
	"os"

	"github.com/fsdevblog/golinks/internal/config"
	"github.com/fsdevblog/golinks/internal/logs"
	"github.com/fsdevblog/golinks/internal/stubapp"
)

func main() {
	conf, err := config.LoadStubConfig(os.Args[1:])
	if err != nil {
		panic(err)
	}

	logger := logs.MustNew(os.Stdout, logs.WithLevel(conf.LogLevel))
	a := stubapp.Must(stubapp.New(*conf, logger))

	a.Logger.WithField("list_size", conf.ListSize).Info("Link stub configured")
	if runErr := a.Run(); runErr != nil && !errors.Is(runErr, context.Canceled) {
		panic(runErr)
	}
}
