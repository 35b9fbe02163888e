package lcmocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fsdevblog/golinks/internal/linkclient"
	"github.com/fsdevblog/golinks/internal/models"
)

// APIMock мок linkclient.API.
type APIMock struct {
	mock.Mock
}

func (a *APIMock) Create(ctx context.Context, link models.Link) linkclient.Result[linkclient.Done] {
	args := a.Called(ctx, link)
	return args.Get(0).(linkclient.Result[linkclient.Done]) //nolint:errcheck
}

func (a *APIMock) Disable(ctx context.Context, name string) linkclient.Result[linkclient.Done] {
	args := a.Called(ctx, name)
	return args.Get(0).(linkclient.Result[linkclient.Done]) //nolint:errcheck
}

func (a *APIMock) ListPopular(ctx context.Context) linkclient.Result[[]models.ListedLink] {
	args := a.Called(ctx)
	return args.Get(0).(linkclient.Result[[]models.ListedLink]) //nolint:errcheck
}

func (a *APIMock) ListRecent(ctx context.Context) linkclient.Result[[]models.ListedLink] {
	args := a.Called(ctx)
	return args.Get(0).(linkclient.Result[[]models.ListedLink]) //nolint:errcheck
}

func (a *APIMock) ListOwned(ctx context.Context) linkclient.Result[[]models.ListedLink] {
	args := a.Called(ctx)
	return args.Get(0).(linkclient.Result[[]models.ListedLink]) //nolint:errcheck
}

func (a *APIMock) Query(ctx context.Context, text string) linkclient.Result[[]models.ListedLink] {
	args := a.Called(ctx, text)
	return args.Get(0).(linkclient.Result[[]models.ListedLink]) //nolint:errcheck
}

var _ linkclient.API = (*APIMock)(nil)
