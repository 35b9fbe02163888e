package db

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fsdevblog/golinks/internal/models"
)

type StorageType string

const (
	StorageTypePostgres StorageType = "postgres"
	StorageTypeSQLite   StorageType = "sqlite"
)

// DetectStorageType определяет тип хранилища снимков по DSN: postgres:// и postgresql:// уходят в PostgreSQL,
// остальное считается путем к файлу SQLite.
func DetectStorageType(dsn string) StorageType {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return StorageTypePostgres
	}
	return StorageTypeSQLite
}

// NewSnapshotDB открывает базу снимков и мигрирует схему.
//
// Параметры:
//   - dsn: строка подключения PostgreSQL или путь к файлу SQLite
//
// Возвращает:
//   - *gorm.DB: подключение
//   - error: ошибка подключения или миграции
func NewSnapshotDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("snapshot dsn is empty")
	}

	var dialector gorm.Dialector
	switch DetectStorageType(dsn) {
	case StorageTypePostgres:
		dialector = postgres.Open(dsn)
	case StorageTypeSQLite:
		dialector = sqlite.Open(dsn)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "connect %s database error", DetectStorageType(dsn))
	}
	if migrateErr := conn.AutoMigrate(&models.SnapshotEntry{}); migrateErr != nil {
		return nil, errors.Wrap(migrateErr, "migrate database error")
	}
	return conn, nil
}
