package app

import (
	"context"
	"flag"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/fsdevblog/golinks/internal/db"
	"github.com/fsdevblog/golinks/internal/models"
	"github.com/fsdevblog/golinks/internal/refresh"
	"github.com/fsdevblog/golinks/internal/repositories/sql"
	"github.com/fsdevblog/golinks/internal/snapshot"
	"github.com/fsdevblog/golinks/internal/tokens"
	"github.com/fsdevblog/golinks/internal/ui"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (a *App) create(ctx context.Context, args []string) error {
	var link models.Link
	fs := newFlagSet("create")
	fs.StringVar(&link.Name, "name", "", "Имя ссылки")
	fs.StringVar(&link.URL, "url", "", "Адрес ссылки")
	fs.StringVar(&link.Description, "description", "", "Описание")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(ErrUsage, err.Error())
	}
	return a.submitLink(ctx, link)
}

// submitLink отправляет форму создания. Ошибки валидации возвращаются как есть,
// ответ сервиса выводится сообщением формы.
func (a *App) submitLink(ctx context.Context, link models.Link) error {
	form := ui.NewCreateForm(a.api, a.coordinator, func(o *ui.CreateFormOptions) {
		o.Logger = a.Logger
	})
	form.Fill(link)
	if err := form.Submit(ctx); err != nil {
		return err
	}

	notice := form.Notice()
	a.renderer.Notice(notice)
	if notice.Failed {
		return ErrCommandFailed
	}
	return nil
}

func (a *App) disable(ctx context.Context, args []string) error {
	var (
		name string
		yes  bool
	)
	fs := newFlagSet("disable")
	fs.StringVar(&name, "name", "", "Имя ссылки")
	fs.BoolVar(&yes, "yes", false, "Не спрашивать подтверждение")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(ErrUsage, err.Error())
	}
	if name == "" && fs.NArg() > 0 {
		name = fs.Arg(0)
	}
	return a.disableLink(ctx, name, yes)
}

func (a *App) disableLink(ctx context.Context, name string, yes bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ui.ValidationError{Field: "name", Reason: "is required"}
	}

	row := ui.NewLinkRow(models.ListedLink{Link: models.Link{Name: name}}, a.api, a.coordinator)
	confirmed := yes || a.confirm(ctx, "Disable "+row.CopyText()+"?")
	if !confirmed {
		a.printf("Canceled\n")
		return nil
	}

	notice := row.Disable(ctx, true)
	a.renderer.Notice(notice)
	if notice.Failed {
		return ErrCommandFailed
	}
	return nil
}

// list показывает одну вкладку и сразу её закрывает.
func (a *App) list(ctx context.Context, name string) error {
	kind := models.ListKind(name)
	tabs := ui.NewTabs(a.api, a.coordinator, func(o *ui.TabsOptions) {
		o.Logger = a.Logger
	})
	defer tabs.Close()

	if err := tabs.Select(ctx, kind); err != nil {
		return errors.Wrap(ErrUsage, err.Error())
	}
	snap, _ := tabs.Snapshot(kind)
	a.renderer.List(snap)
	if snap.State == refresh.StateFailed {
		return ErrCommandFailed
	}
	return nil
}

func (a *App) query(ctx context.Context, text string) error {
	form := ui.NewQueryForm(a.api)
	if err := form.Search(ctx, text); err != nil {
		return err
	}
	a.renderQuery(form)
	if form.Notice().Failed {
		return ErrCommandFailed
	}
	return nil
}

func (a *App) renderQuery(form *ui.QueryForm) {
	a.printf("== Results for %q ==\n", form.Query())
	if notice := form.Notice(); notice.Failed {
		a.renderer.Notice(notice)
		return
	}
	a.renderer.Links(form.Results())
}

// whoami показывает владельца настроенного токена. Подпись не проверяется.
func (a *App) whoami() error {
	if a.config.AuthToken == "" {
		return ErrNoToken
	}
	claims, err := tokens.ParseOwnerUnverified(a.config.AuthToken)
	if err != nil {
		return errors.Wrap(err, "whoami")
	}
	owner, _ := claims.Owner()
	a.printf("Signed in as %s\n", owner)
	if claims.ExpiresAt != nil {
		expires := claims.ExpiresAt.UTC()
		if expires.Before(time.Now()) {
			a.printf("Token expired at %s\n", expires.Format(time.RFC3339))
		} else {
			a.printf("Token expires at %s\n", expires.Format(time.RFC3339))
		}
	}
	return nil
}

func (a *App) snapshot(ctx context.Context, args []string) error {
	var (
		dsn      string
		rawKinds string
	)
	fs := newFlagSet("snapshot")
	fs.StringVar(&dsn, "dsn", a.config.SnapshotDSN, "Путь sqlite или postgres DSN")
	fs.StringVar(&rawKinds, "kinds", "", "Списки через запятую, по умолчанию все")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(ErrUsage, err.Error())
	}
	if dsn == "" {
		return ErrNoSnapshotDSN
	}

	var kinds []models.ListKind
	for _, k := range strings.Split(rawKinds, ",") {
		if k = strings.TrimSpace(k); k != "" {
			kinds = append(kinds, models.ListKind(strings.ToLower(k)))
		}
	}

	conn, err := db.NewSnapshotDB(dsn)
	if err != nil {
		return errors.Wrap(err, "open snapshot storage")
	}
	if sqlDB, dbErr := conn.DB(); dbErr == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	exporter := snapshot.NewExporter(a.api, sql.NewSnapshotRepo(conn, a.Logger), a.Logger)
	report, err := exporter.Export(ctx, kinds...)
	if report != nil {
		a.renderReport(report, kinds)
	}
	if err != nil {
		return errors.Wrap(err, "snapshot")
	}
	return nil
}

func (a *App) renderReport(report *snapshot.Report, kinds []models.ListKind) {
	if len(kinds) == 0 {
		kinds = snapshot.AllKinds
	}
	a.printf("Snapshot taken at %s\n", report.TakenAt.Format(time.RFC3339))
	for _, kind := range kinds {
		if msg, failed := report.Failed[kind]; failed {
			a.printf("%s: skipped (%s)\n", kind, msg)
			continue
		}
		a.printf("%s: %d saved\n", kind, report.Saved[kind])
	}
}
