package sql

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/fsdevblog/golinks/internal/repositories"
)

func ConvertErrorType(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicateKey
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	default:
		return repositories.ErrUnknown
	}
}
