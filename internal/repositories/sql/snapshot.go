package sql

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fsdevblog/golinks/internal/models"
)

// SnapshotRepo хранит выгруженные списки ссылок.
type SnapshotRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewSnapshotRepo(db *gorm.DB, logger *logrus.Logger) *SnapshotRepo {
	return &SnapshotRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/snapshot"),
	}
}

// SaveAll сохраняет записи снимка в одной транзакции. Пустой набор ничего не пишет.
//
// Параметры:
//   - ctx: контекст выполнения
//   - entries: записи снимка
//
// Возвращает:
//   - error: ошибка записи, транзакция в этом случае откатывается
func (s *SnapshotRepo) SaveAll(ctx context.Context, entries []models.SnapshotEntry) error {
	if len(entries) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&entries).Error
	})
	if err != nil {
		s.logger.WithError(err).Errorf("failed to save %d snapshot entries", len(entries))
		return errors.Wrap(ConvertErrorType(err), err.Error())
	}
	return nil
}

// Latest возвращает записи последнего снимка списка kind в порядке позиций.
func (s *SnapshotRepo) Latest(ctx context.Context, kind models.ListKind) ([]models.SnapshotEntry, error) {
	var last models.SnapshotEntry
	if err := s.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("taken_at DESC").
		First(&last).Error; err != nil {
		return nil, errors.Wrapf(ConvertErrorType(err), "failed to find latest `%s` snapshot", kind)
	}
	return s.Taken(ctx, kind, last.TakenAt)
}

// Taken возвращает записи списка kind, снятого в момент takenAt.
func (s *SnapshotRepo) Taken(ctx context.Context, kind models.ListKind, takenAt time.Time) ([]models.SnapshotEntry, error) {
	var entries []models.SnapshotEntry
	if err := s.db.WithContext(ctx).
		Where("kind = ? AND taken_at = ?", kind, takenAt).
		Order("position ASC").
		Find(&entries).Error; err != nil {
		s.logger.WithError(err).Errorf("failed to read `%s` snapshot", kind)
		return nil, errors.Wrapf(ConvertErrorType(err), "failed to read `%s` snapshot", kind)
	}
	return entries, nil
}
