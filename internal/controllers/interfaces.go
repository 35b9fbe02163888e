package controllers

import (
	"context"

	"github.com/fsdevblog/golinks/internal/models"
)

// LinkStore сервис ссылок, с которым работает контроллер.
type LinkStore interface {
	Create(ctx context.Context, rawName string, link models.Link, owner string) (*models.Record, error)
	Disable(ctx context.Context, rawName string) error
	// Resolve находит ссылку для перехода и засчитывает просмотр.
	Resolve(ctx context.Context, rawName string) (*models.Record, error)
	Popular(ctx context.Context) ([]models.ListedLink, error)
	Recent(ctx context.Context) ([]models.ListedLink, error)
	Owned(ctx context.Context, email string) ([]models.ListedLink, error)
	Query(ctx context.Context, text string) ([]models.ListedLink, error)
}
