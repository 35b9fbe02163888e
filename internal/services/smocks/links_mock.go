package smocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fsdevblog/golinks/internal/models"
)

type LinksMock struct {
	mock.Mock
}

func (l *LinksMock) Create(ctx context.Context, rawName string, link models.Link, owner string) (*models.Record, error) {
	args := l.Called(ctx, rawName, link, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck
	}
	return args.Get(0).(*models.Record), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinksMock) Disable(ctx context.Context, rawName string) error {
	args := l.Called(ctx, rawName)
	return args.Error(0) //nolint:wrapcheck
}

func (l *LinksMock) Resolve(ctx context.Context, rawName string) (*models.Record, error) {
	args := l.Called(ctx, rawName)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck
	}
	return args.Get(0).(*models.Record), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinksMock) Popular(ctx context.Context) ([]models.ListedLink, error) {
	return l.list(l.Called(ctx))
}

func (l *LinksMock) Recent(ctx context.Context) ([]models.ListedLink, error) {
	return l.list(l.Called(ctx))
}

func (l *LinksMock) Owned(ctx context.Context, email string) ([]models.ListedLink, error) {
	return l.list(l.Called(ctx, email))
}

func (l *LinksMock) Query(ctx context.Context, text string) ([]models.ListedLink, error) {
	return l.list(l.Called(ctx, text))
}

func (l *LinksMock) list(args mock.Arguments) ([]models.ListedLink, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck
	}
	return args.Get(0).([]models.ListedLink), args.Error(1) //nolint:wrapcheck,errcheck
}
