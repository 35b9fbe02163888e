// Package app клиент командной строки сервиса коротких ссылок go/.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/golinks/internal/bmeta"
	"github.com/fsdevblog/golinks/internal/config"
	"github.com/fsdevblog/golinks/internal/linkclient"
	"github.com/fsdevblog/golinks/internal/refresh"
	"github.com/fsdevblog/golinks/internal/ui"
)

var (
	// ErrUsage неизвестная подкоманда или неверные аргументы.
	ErrUsage = errors.New("invalid usage")
	// ErrCommandFailed сервис вернул ошибку, сообщение уже показано пользователю.
	ErrCommandFailed = errors.New("command failed")
	// ErrNoToken токен пользователя не настроен.
	ErrNoToken = errors.New("no auth token configured")
	// ErrNoSnapshotDSN не задано хранилище снимков.
	ErrNoSnapshotDSN = errors.New("no snapshot dsn configured")
)

const usage = `Usage: golinks [-b address] [-t timeout] [-token token] [-log-level level] <command> [args]

Commands:
  create -name NAME -url URL -description TEXT   create go/NAME
  disable -name NAME [-yes]                      disable go/NAME
  popular | recent | owned                       show a list of links
  query TEXT                                     search links by name or description
  whoami                                         show the owner of the configured token
  snapshot [-dsn DSN] [-kinds popular,recent]    save lists to sqlite or postgres
  shell                                          interactive mode
  version                                        show build information
`

// Options дополнительные настройки приложения.
type Options struct {
	Logger *logrus.Logger
	// API подменяет клиент сервиса, по умолчанию используется linkclient.Client.
	API   linkclient.API
	In    io.Reader
	Out   io.Writer
	Build bmeta.Info
}

// App клиент командной строки. Все подкоманды работают через один координатор обновлений,
// поэтому изменения в shell сразу обновляют показанную вкладку.
type App struct {
	config      config.ClientConfig
	api         linkclient.API
	coordinator *refresh.Coordinator
	renderer    *ui.Renderer
	in          *lineReader
	out         io.Writer
	build       bmeta.Info
	Logger      *logrus.Logger
}

// New создает приложение.
//
// Параметры:
//   - conf: конфигурация клиента
//   - opts: функции для настройки логгера, ввода-вывода и клиента
//
// Возвращает:
//   - *App: приложение
//   - error: ошибка конфигурации
func New(conf config.ClientConfig, opts ...func(*Options)) (*App, error) {
	options := Options{
		Logger: logrus.StandardLogger(),
		In:     os.Stdin,
		Out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if options.API == nil {
		if err := conf.Validate(); err != nil {
			return nil, fmt.Errorf("init app: %w", err)
		}
		options.API = linkclient.New(linkclient.Config{
			BaseAddress: conf.BaseAddress,
			Timeout:     conf.Timeout,
			AuthToken:   conf.AuthToken,
		}, func(o *linkclient.Options) {
			o.Logger = options.Logger
		})
	}

	return &App{
		config:      conf,
		api:         options.API,
		coordinator: refresh.NewCoordinator(),
		renderer:    ui.NewRenderer(options.Out),
		in:          newLineReader(options.In),
		out:         options.Out,
		build:       options.Build,
		Logger:      options.Logger,
	}, nil
}

// Must вызывает панику если произошла ошибка.
func Must(a *App, err error) *App {
	if err != nil {
		panic(err)
	}
	return a
}

// Run выполняет подкоманду args[0] с аргументами args[1:].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("%s", usage)
		return ErrUsage
	}

	name, rest := args[0], args[1:]
	a.Logger.WithField("command", name).Debug("Running command")

	switch name {
	case "create":
		return a.create(ctx, rest)
	case "disable":
		return a.disable(ctx, rest)
	case "popular", "recent", "owned":
		return a.list(ctx, name)
	case "query":
		return a.query(ctx, strings.Join(rest, " "))
	case "whoami":
		return a.whoami()
	case "snapshot":
		return a.snapshot(ctx, rest)
	case "shell":
		return a.shell(ctx)
	case "version":
		bmeta.Fprint(a.out, a.build)
		return nil
	case "help", "-h", "--help":
		a.printf("%s", usage)
		return nil
	default:
		a.printf("Unknown command `%s`\n\n%s", name, usage)
		return ErrUsage
	}
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

// confirm спрашивает подтверждение. Пустой ответ, конец ввода и отмена контекста считаются отказом.
func (a *App) confirm(ctx context.Context, question string) bool {
	a.printf("%s [y/N]: ", question)
	answer, err := a.in.ReadLine(ctx)
	if err != nil {
		a.printf("\n")
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
