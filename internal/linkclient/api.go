package linkclient

import (
	"context"

	"github.com/fsdevblog/golinks/internal/models"
)

// API операции сервиса ссылок. Реализуется Client, в тестах подменяется моками.
type API interface {
	Create(ctx context.Context, link models.Link) Result[Done]
	Disable(ctx context.Context, name string) Result[Done]
	ListPopular(ctx context.Context) Result[[]models.ListedLink]
	ListRecent(ctx context.Context) Result[[]models.ListedLink]
	ListOwned(ctx context.Context) Result[[]models.ListedLink]
	Query(ctx context.Context, text string) Result[[]models.ListedLink]
}

var _ API = (*Client)(nil)
