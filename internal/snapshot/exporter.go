// Package snapshot выгружает списки ссылок сервиса в базу данных.
package snapshot

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fsdevblog/golinks/internal/linkclient"
	"github.com/fsdevblog/golinks/internal/models"
)

// ErrNothingExported ни один список не удалось получить.
var ErrNothingExported = errors.New("no list was exported")

// AllKinds списки в порядке выгрузки.
var AllKinds = []models.ListKind{models.ListKindPopular, models.ListKindRecent, models.ListKindOwned} //nolint:gochecknoglobals

// Repository хранилище снимков.
type Repository interface {
	SaveAll(ctx context.Context, entries []models.SnapshotEntry) error
}

// Report итог выгрузки.
type Report struct {
	TakenAt time.Time
	Saved   map[models.ListKind]int
	Failed  map[models.ListKind]string
}

type Exporter struct {
	api    linkclient.API
	repo   Repository
	logger *logrus.Entry
	now    func() time.Time
}

func NewExporter(api linkclient.API, repo Repository, logger *logrus.Logger) *Exporter {
	return &Exporter{
		api:    api,
		repo:   repo,
		logger: logger.WithField("module", "snapshot"),
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// Export запрашивает списки kinds параллельно и сохраняет полученные одной транзакцией.
// Список, который не удалось получить, попадает в Report.Failed и пропускается.
//
// Параметры:
//   - ctx: контекст выполнения
//   - kinds: какие списки выгружать, пусто - все
//
// Возвращает:
//   - *Report: сколько записей сохранено по каждому списку и какие списки пропущены
//   - error: ошибка записи или ErrNothingExported
func (e *Exporter) Export(ctx context.Context, kinds ...models.ListKind) (*Report, error) {
	if len(kinds) == 0 {
		kinds = AllKinds
	}

	fetchers := make([]func(context.Context) linkclient.Result[[]models.ListedLink], len(kinds))
	for i, kind := range kinds {
		fetch, err := e.fetcher(kind)
		if err != nil {
			return nil, err
		}
		fetchers[i] = fetch
	}

	results := make([]linkclient.Result[[]models.ListedLink], len(kinds))
	var g errgroup.Group
	for i, fetch := range fetchers {
		g.Go(func() error {
			results[i] = fetch(ctx)
			return nil
		})
	}
	_ = g.Wait()

	report := &Report{
		TakenAt: e.now(),
		Saved:   make(map[models.ListKind]int, len(kinds)),
		Failed:  make(map[models.ListKind]string),
	}

	var entries []models.SnapshotEntry
	for i, kind := range kinds {
		res := results[i]
		if !res.OK() {
			e.logger.WithFields(logrus.Fields{"kind": kind, "error": res.Message()}).Warn("list skipped")
			report.Failed[kind] = res.Message()
			continue
		}
		for pos, link := range res.Value() {
			entries = append(entries, models.SnapshotEntry{
				TakenAt:     report.TakenAt,
				Kind:        kind,
				Position:    pos,
				Name:        link.Name,
				URL:         link.URL,
				Description: link.Description,
				Views:       link.Views,
			})
		}
		report.Saved[kind] = len(res.Value())
	}

	if len(report.Saved) == 0 {
		return report, ErrNothingExported
	}
	if err := e.repo.SaveAll(ctx, entries); err != nil {
		return report, errors.Wrap(err, "save snapshot")
	}
	e.logger.WithField("entries", len(entries)).Info("snapshot saved")
	return report, nil
}

func (e *Exporter) fetcher(kind models.ListKind) (func(context.Context) linkclient.Result[[]models.ListedLink], error) {
	switch kind {
	case models.ListKindPopular:
		return e.api.ListPopular, nil
	case models.ListKindRecent:
		return e.api.ListRecent, nil
	case models.ListKindOwned:
		return e.api.ListOwned, nil
	default:
		return nil, errors.Errorf("unknown list `%s`", kind)
	}
}
