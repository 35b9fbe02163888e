package services

import (
	"context"

	"github.com/fsdevblog/golinks/internal/models"
)

// LinkRepository описывает хранилище ссылок.
type LinkRepository interface {
	// Create сохраняет новую ссылку. Если активная ссылка с таким именем есть - repositories.ErrDuplicateKey.
	Create(ctx context.Context, rec *models.Record) error
	// GetByName находит активную ссылку по имени.
	GetByName(ctx context.Context, name string) (*models.Record, error)
	// Disable отключает ссылку.
	Disable(ctx context.Context, name string) error
	IncrementViews(ctx context.Context, name string) error
	Popular(ctx context.Context, size int) ([]models.Record, error)
	Recent(ctx context.Context, size int) ([]models.Record, error)
	Owned(ctx context.Context, email string, size int) ([]models.Record, error)
	// Query ищет по подстроке в имени или описании.
	Query(ctx context.Context, text string) ([]models.Record, error)
}
