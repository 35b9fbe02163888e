package memstore

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsdevblog/golinks/internal/db/memory"
	"github.com/fsdevblog/golinks/internal/models"
)

// LinkRepo репозиторий ссылок в памяти. Ключ записи - очищенное имя ссылки.
type LinkRepo struct {
	s   *memory.MStorage
	mu  sync.Mutex
	now func() time.Time
}

// NewLinkRepo создает новый экземпляр репозитория ссылок.
//
// Параметры:
//   - store: экземпляр хранилища в памяти
//
// Возвращает:
//   - *LinkRepo: инициализированный репозиторий
func NewLinkRepo(store *memory.MStorage) *LinkRepo {
	return &LinkRepo{
		s:   store,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create сохраняет новую ссылку. Отключенная ссылка с тем же именем перезаписывается.
//
// Параметры:
//   - ctx: контекст выполнения
//   - rec: запись для сохранения. CreatedAt и UpdatedAt проставляются репозиторием
//
// Возвращает:
//   - error: repositories.ErrDuplicateKey если активная ссылка с таким именем уже есть
func (l *LinkRepo) Create(ctx context.Context, rec *models.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := memory.Get[models.Record](ctx, rec.Name, l.s)
	switch {
	case err == nil && !existing.Disabled:
		return linkError("create", rec.Name, memory.ErrDuplicateKey)
	case err != nil && !errors.Is(err, memory.ErrNotFound):
		return linkError("create", rec.Name, err)
	}

	rec.CreatedAt = l.now()
	rec.UpdatedAt = rec.CreatedAt
	rec.Views = 0
	rec.Disabled = false
	if setErr := memory.Set(ctx, rec.Name, rec, l.s, memory.WithOverwrite()); setErr != nil {
		return linkError("create", rec.Name, setErr)
	}
	return nil
}

// GetByName возвращает активную ссылку по имени.
func (l *LinkRepo) GetByName(ctx context.Context, name string) (*models.Record, error) {
	rec, err := memory.Get[models.Record](ctx, name, l.s)
	if err != nil {
		return nil, linkError("get", name, err)
	}
	if rec.Disabled {
		return nil, linkError("get", name, errDisabled)
	}
	return rec, nil
}

// Disable помечает ссылку отключенной. Отключение несуществующей ссылки не является ошибкой.
func (l *LinkRepo) Disable(ctx context.Context, name string) error {
	_, err := memory.Update(ctx, name, l.s, func(rec *models.Record) error {
		rec.Disabled = true
		rec.UpdatedAt = l.now()
		return nil
	})
	if err != nil && !errors.Is(err, memory.ErrNotFound) {
		return linkError("disable", name, err)
	}
	return nil
}

// IncrementViews увеличивает счетчик просмотров активной ссылки.
func (l *LinkRepo) IncrementViews(ctx context.Context, name string) error {
	_, err := memory.Update(ctx, name, l.s, func(rec *models.Record) error {
		if rec.Disabled {
			return errDisabled
		}
		rec.Views++
		return nil
	})
	if err != nil {
		return linkError("count view of", name, err)
	}
	return nil
}

// Popular возвращает не более size активных ссылок по убыванию просмотров.
func (l *LinkRepo) Popular(ctx context.Context, size int) ([]models.Record, error) {
	return l.list(ctx, size, activeOnly, func(a, b models.Record) int {
		return cmp.Or(cmp.Compare(b.Views, a.Views), cmp.Compare(a.Name, b.Name))
	})
}

// Recent возвращает не более size активных ссылок, начиная с самых новых.
func (l *LinkRepo) Recent(ctx context.Context, size int) ([]models.Record, error) {
	return l.list(ctx, size, activeOnly, func(a, b models.Record) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.Name, b.Name))
	})
}

// Owned возвращает не более size активных ссылок владельца, начиная с самых новых.
func (l *LinkRepo) Owned(ctx context.Context, email string, size int) ([]models.Record, error) {
	return l.list(ctx, size,
		func(rec models.Record) bool {
			return activeOnly(rec) && strings.EqualFold(rec.CreatedBy, email)
		},
		func(a, b models.Record) int {
			return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.Name, b.Name))
		})
}

// Query ищет активные ссылки, у которых имя или описание содержит text без учета регистра.
// Результат отсортирован по убыванию просмотров.
func (l *LinkRepo) Query(ctx context.Context, text string) ([]models.Record, error) {
	needle := strings.ToLower(text)
	return l.list(ctx, 0,
		func(rec models.Record) bool {
			return activeOnly(rec) &&
				(strings.Contains(strings.ToLower(rec.Name), needle) ||
					strings.Contains(strings.ToLower(rec.Description), needle))
		},
		func(a, b models.Record) int {
			return cmp.Or(cmp.Compare(b.Views, a.Views), cmp.Compare(a.Name, b.Name))
		})
}

// list выбирает записи по фильтру, сортирует и обрезает до size. size <= 0 - без ограничения.
func (l *LinkRepo) list(
	ctx context.Context,
	size int,
	filter func(models.Record) bool,
	order func(a, b models.Record) int,
) ([]models.Record, error) {
	data, err := memory.FilterAll(ctx, l.s, filter)
	if err != nil {
		return nil, linkError("list", "", err)
	}
	slices.SortFunc(data, order)
	if size > 0 && size < len(data) {
		data = data[:size]
	}
	return data, nil
}

func activeOnly(rec models.Record) bool {
	return !rec.Disabled
}
