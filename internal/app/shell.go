package app

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/fsdevblog/golinks/internal/models"
	"github.com/fsdevblog/golinks/internal/refresh"
	"github.com/fsdevblog/golinks/internal/ui"
)

const shellPrompt = "go> "

const shellHelp = `Commands:
  tab popular|recent|owned          switch the visible list
  show                              print the visible list again
  create NAME URL DESCRIPTION...    create go/NAME
  disable NAME                      disable go/NAME
  query TEXT                        search links
  help                              show this help
  exit                              leave the shell
`

// shell интерактивный режим. Видна одна вкладка, она перерисовывается после каждого
// успешного создания или отключения ссылки.
func (a *App) shell(ctx context.Context) error {
	tabs := ui.NewTabs(a.api, a.coordinator, func(o *ui.TabsOptions) {
		o.Logger = a.Logger
		o.OnChange = func(snap refresh.Snapshot) {
			if snap.State == refresh.StatePopulated || snap.State == refresh.StateFailed {
				a.renderer.List(snap)
			}
		}
	})
	defer tabs.Close()
	queryForm := ui.NewQueryForm(a.api)

	a.renderer.Header()
	if err := tabs.Select(ctx, ui.DefaultTabs[0].Kind); err != nil {
		return err
	}

	for {
		a.printf("%s", shellPrompt)
		line, err := a.in.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			a.printf("\n")
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read command")
		}

		command, rest := splitCommand(line)
		switch command {
		case "":
		case "exit", "quit":
			return nil
		case "help":
			a.printf("%s", shellHelp)
		case "tab":
			a.shellError(tabs.Select(ctx, models.ListKind(strings.ToLower(rest))))
		case "show":
			if snap, ok := tabs.Snapshot(tabs.Active()); ok {
				a.renderer.List(snap)
			}
		case "create":
			fields := strings.Fields(rest)
			if len(fields) < 3 { //nolint:mnd
				a.printf("Usage: create NAME URL DESCRIPTION...\n")
				continue
			}
			a.shellError(a.submitLink(ctx, models.Link{
				Name:        fields[0],
				URL:         fields[1],
				Description: strings.Join(fields[2:], " "),
			}))
		case "disable":
			a.shellError(a.disableLink(ctx, rest, false))
		case "query":
			if searchErr := queryForm.Search(ctx, rest); searchErr != nil {
				a.shellError(searchErr)
				continue
			}
			a.renderQuery(queryForm)
		default:
			a.printf("Unknown command `%s`, type help\n", command)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// shellError выводит ошибку команды. Ошибки сервиса уже показаны формой.
func (a *App) shellError(err error) {
	if err == nil || errors.Is(err, ErrCommandFailed) {
		return
	}
	a.renderer.Notice(ui.Notice{Text: err.Error(), Failed: true})
}

func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	command, rest, _ := strings.Cut(line, " ")
	return strings.ToLower(command), strings.TrimSpace(rest)
}
