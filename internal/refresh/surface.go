package refresh

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/golinks/internal/linkclient"
	"github.com/fsdevblog/golinks/internal/models"
)

// State состояние поверхности списка.
type State int

const (
	StateIdle State = iota
	StateFetching
	StatePopulated
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StatePopulated:
		return "populated"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fetcher операция чтения списка, например linkclient.Client.ListPopular.
type Fetcher func(ctx context.Context) linkclient.Result[[]models.ListedLink]

// Snapshot состояние поверхности на момент вызова.
type Snapshot struct {
	Title   string
	State   State
	Links   []models.ListedLink
	Message string
	Token   Token
}

// SurfaceOptions настройки поверхности.
type SurfaceOptions struct {
	Logger *logrus.Logger
	// OnChange вызывается после каждого перехода состояния, под блокировкой поверхности.
	// Обращаться к методам поверхности из него нельзя, состояние передается в аргументе.
	OnChange func(Snapshot)
}

// ListSurface поверхность, показывающая один список ссылок.
// Idle -> Fetching -> Populated | Failed; обратно в Fetching только при первом показе или смене токена.
type ListSurface struct {
	title  string
	fetch  Fetcher
	logger *logrus.Entry
	notify func(Snapshot)

	mu      sync.Mutex
	state   State
	links   []models.ListedLink
	message string
	seen    Token
	mounted bool
	gen     uint64
}

// NewListSurface создает поверхность в состоянии Idle.
func NewListSurface(title string, fetch Fetcher, opts ...func(*SurfaceOptions)) *ListSurface {
	options := SurfaceOptions{
		Logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &ListSurface{
		title:  title,
		fetch:  fetch,
		logger: options.Logger.WithFields(logrus.Fields{"module": "refresh", "surface": title}),
		notify: options.OnChange,
		links:  make([]models.ListedLink, 0),
	}
}

// Mount первый показ поверхности: всегда запрашивает список.
func (s *ListSurface) Mount(ctx context.Context, token Token) {
	s.mu.Lock()
	s.mounted = true
	gen := s.begin(token)
	s.mu.Unlock()

	s.run(ctx, gen)
}

// Observe реагирует на новый токен. Запрос делается только если поверхность показана и токен новее
// уже обработанного; повтор того же токена запроса не вызывает.
func (s *ListSurface) Observe(ctx context.Context, token Token) {
	s.mu.Lock()
	if !s.mounted || token <= s.seen {
		s.mu.Unlock()
		return
	}
	gen := s.begin(token)
	s.mu.Unlock()

	s.run(ctx, gen)
}

// Unmount скрывает поверхность. Результаты запросов, завершившихся позже, отбрасываются.
func (s *ListSurface) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounted = false
	s.gen++
}

// Bind показывает поверхность с текущим токеном координатора и подписывает её на изменения.
// Возвращает функцию, которая отписывает и скрывает поверхность.
func (s *ListSurface) Bind(ctx context.Context, c *Coordinator) func() {
	unsubscribe := c.Subscribe(func(token Token) {
		s.Observe(ctx, token)
	})
	s.Mount(ctx, c.Token())
	return func() {
		unsubscribe()
		s.Unmount()
	}
}

// Snapshot возвращает копию текущего состояния.
func (s *ListSurface) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// begin переводит поверхность в Fetching. Вызывается под блокировкой.
func (s *ListSurface) begin(token Token) uint64 {
	s.seen = token
	s.gen++
	s.state = StateFetching
	s.emitLocked()
	return s.gen
}

func (s *ListSurface) run(ctx context.Context, gen uint64) {
	result := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.logger.WithField("generation", gen).Debug("Stale list result dropped")
		return
	}

	if result.OK() {
		s.state = StatePopulated
		s.links = result.Value()
		s.message = ""
	} else {
		s.state = StateFailed
		s.links = make([]models.ListedLink, 0)
		s.message = result.Message()
		s.logger.WithField("error", result.Message()).Debug("List fetch failed")
	}
	s.emitLocked()
}

func (s *ListSurface) snapshotLocked() Snapshot {
	links := make([]models.ListedLink, len(s.links))
	copy(links, s.links)
	return Snapshot{
		Title:   s.title,
		State:   s.state,
		Links:   links,
		Message: s.message,
		Token:   s.seen,
	}
}

func (s *ListSurface) emitLocked() {
	if s.notify != nil {
		s.notify(s.snapshotLocked())
	}
}
