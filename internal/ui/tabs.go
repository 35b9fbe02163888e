package ui

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/golinks/internal/linkclient"
	"github.com/fsdevblog/golinks/internal/models"
	"github.com/fsdevblog/golinks/internal/refresh"
)

// Tab описание вкладки со списком.
type Tab struct {
	Kind  models.ListKind
	Title string
}

// DefaultTabs вкладки в порядке отображения.
var DefaultTabs = []Tab{ //nolint:gochecknoglobals
	{Kind: models.ListKindPopular, Title: "Popular"},
	{Kind: models.ListKindRecent, Title: "Recent"},
	{Kind: models.ListKindOwned, Title: "My Links"},
}

// TabsOptions настройки вкладок.
type TabsOptions struct {
	Logger   *logrus.Logger
	OnChange func(refresh.Snapshot)
}

// Tabs вкладки Popular / Recent / My Links. Показывается только активная вкладка:
// она запрашивает список при выборе и при каждой смене токена координатора.
type Tabs struct {
	coordinator *refresh.Coordinator
	surfaces    map[models.ListKind]*refresh.ListSurface

	mu     sync.Mutex
	active models.ListKind
	unbind func()
}

// NewTabs создает вкладки, работающие через API клиента.
func NewTabs(api linkclient.API, coordinator *refresh.Coordinator, opts ...func(*TabsOptions)) *Tabs {
	options := TabsOptions{Logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&options)
	}

	fetchers := map[models.ListKind]refresh.Fetcher{
		models.ListKindPopular: api.ListPopular,
		models.ListKindRecent:  api.ListRecent,
		models.ListKindOwned:   api.ListOwned,
	}

	surfaces := make(map[models.ListKind]*refresh.ListSurface, len(DefaultTabs))
	for _, tab := range DefaultTabs {
		surfaces[tab.Kind] = refresh.NewListSurface(tab.Title, fetchers[tab.Kind], func(o *refresh.SurfaceOptions) {
			o.Logger = options.Logger
			o.OnChange = options.OnChange
		})
	}

	return &Tabs{
		coordinator: coordinator,
		surfaces:    surfaces,
	}
}

// Select делает вкладку активной: предыдущая скрывается, новая показывается и запрашивает список.
func (t *Tabs) Select(ctx context.Context, kind models.ListKind) error {
	surface, ok := t.surfaces[kind]
	if !ok {
		return fmt.Errorf("unknown tab `%s`", kind)
	}

	t.mu.Lock()
	if t.unbind != nil {
		t.unbind()
	}
	t.active = kind
	t.mu.Unlock()

	unbind := surface.Bind(ctx, t.coordinator)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == kind {
		t.unbind = unbind
	} else {
		unbind()
	}
	return nil
}

// Close скрывает активную вкладку.
func (t *Tabs) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.unbind != nil {
		t.unbind()
		t.unbind = nil
	}
	t.active = ""
}

// Active возвращает активную вкладку.
func (t *Tabs) Active() models.ListKind {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Snapshot возвращает состояние вкладки.
func (t *Tabs) Snapshot(kind models.ListKind) (refresh.Snapshot, bool) {
	surface, ok := t.surfaces[kind]
	if !ok {
		return refresh.Snapshot{}, false
	}
	return surface.Snapshot(), true
}
