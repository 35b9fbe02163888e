package memstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/golinks/internal/db/memory"
	"github.com/fsdevblog/golinks/internal/repositories"
)

// errDisabled ссылка есть в хранилище, но отключена.
var errDisabled = errors.New("link is disabled")

// linkError приводит ошибку хранилища к ошибке уровня репозитория и добавляет операцию и имя ссылки.
// Отключенная ссылка считается отсутствующей, отмена контекста сохраняется как есть.
func linkError(op, name string, err error) error {
	if err == nil {
		return nil
	}

	var target error
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		target = err
	case errors.Is(err, memory.ErrDuplicateKey):
		target = repositories.ErrDuplicateKey
	case errors.Is(err, memory.ErrNotFound), errors.Is(err, errDisabled):
		target = repositories.ErrNotFound
	default:
		target = repositories.ErrUnknown
	}

	if name == "" {
		return fmt.Errorf("%s links: %w (%s)", op, target, err.Error())
	}
	return fmt.Errorf("%s link `%s`: %w (%s)", op, name, target, err.Error())
}
