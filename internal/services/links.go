package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/golinks/internal/models"
	"github.com/fsdevblog/golinks/internal/repositories"
)

// AnonymousOwner владелец ссылок, созданных без токена.
const AnonymousOwner = "untracked"

var (
	validNameRegexp    = regexp.MustCompile(`^[a-zA-Z0-9/-]*$`)
	reservedNameRegexp = regexp.MustCompile(`^(static(/.*)?|api(/.*)?)$`)
)

// LinkService сервис ссылок тестового сервера.
type LinkService struct {
	repo     LinkRepository
	listSize int
	logger   *logrus.Entry
}

// NewLinkService создает сервис ссылок.
//
// Параметры:
//   - repo: хранилище ссылок
//   - listSize: сколько ссылок отдают списки popular, recent и owned
//   - logger: логгер
//
// Возвращает:
//   - *LinkService: сервис
func NewLinkService(repo LinkRepository, listSize int, logger *logrus.Logger) *LinkService {
	return &LinkService{
		repo:     repo,
		listSize: listSize,
		logger:   logger.WithField("module", "service/links"),
	}
}

// CleanName приводит имя ссылки из пути запроса к каноническому виду: без крайних слешей, в нижнем регистре.
// Допустимы латинские буквы, цифры, '/' и '-', но имя не может начинаться или заканчиваться на '-'.
func CleanName(raw string) (string, error) {
	name := strings.TrimPrefix(raw, "/")
	name = strings.TrimSuffix(name, "/")
	if name == "" {
		return "", errors.Wrap(ErrInvalidName, "name is empty")
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") || !validNameRegexp.MatchString(name) {
		return "", errors.Wrapf(ErrInvalidName, "name `%s`", raw)
	}
	name = strings.ToLower(name)
	if reservedNameRegexp.MatchString(name) {
		return "", errors.Wrapf(ErrReservedName, "name `%s`", name)
	}
	return name, nil
}

// Create создает ссылку с именем из пути. Имя из тела запроса игнорируется.
//
// Возвращает:
//   - error: ErrInvalidName, ErrReservedName, ErrInvalidPayload, ErrLinkExists или ErrUnknown
func (s *LinkService) Create(ctx context.Context, rawName string, link models.Link, owner string) (*models.Record, error) {
	name, err := CleanName(rawName)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(link.URL) == "" {
		return nil, errors.Wrap(ErrInvalidPayload, "url is empty")
	}
	if owner == "" {
		owner = AnonymousOwner
	}

	rec := &models.Record{
		Name:        name,
		Description: link.Description,
		URL:         strings.TrimSpace(link.URL),
		CreatedBy:   owner,
	}
	if createErr := s.repo.Create(ctx, rec); createErr != nil {
		if errors.Is(createErr, repositories.ErrDuplicateKey) {
			return nil, errors.Wrapf(ErrLinkExists, "name `%s`", name)
		}
		s.logger.WithError(createErr).Errorf("failed to create link `%s`", name)
		return nil, ErrUnknown
	}
	s.logger.WithFields(logrus.Fields{"name": name, "owner": owner}).Info("link created")
	return rec, nil
}

// Disable отключает ссылку. Отключение отсутствующей ссылки успешно.
func (s *LinkService) Disable(ctx context.Context, rawName string) error {
	name, err := CleanName(rawName)
	if err != nil {
		return err
	}
	if disableErr := s.repo.Disable(ctx, name); disableErr != nil {
		s.logger.WithError(disableErr).Errorf("failed to disable link `%s`", name)
		return ErrUnknown
	}
	s.logger.WithField("name", name).Info("link disabled")
	return nil
}

// Resolve находит ссылку для перехода и увеличивает счетчик просмотров.
func (s *LinkService) Resolve(ctx context.Context, rawName string) (*models.Record, error) {
	name, err := CleanName(rawName)
	if err != nil {
		return nil, err
	}
	rec, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "name `%s`", name)
		}
		return nil, ErrUnknown
	}
	if incErr := s.repo.IncrementViews(ctx, name); incErr != nil {
		s.logger.WithError(incErr).Warnf("failed to increment views of `%s`", name)
	} else {
		rec.Views++
	}
	return rec, nil
}

func (s *LinkService) Popular(ctx context.Context) ([]models.ListedLink, error) {
	return s.listed(s.repo.Popular(ctx, s.listSize))
}

func (s *LinkService) Recent(ctx context.Context) ([]models.ListedLink, error) {
	return s.listed(s.repo.Recent(ctx, s.listSize))
}

// Owned ссылки владельца email.
func (s *LinkService) Owned(ctx context.Context, email string) ([]models.ListedLink, error) {
	return s.listed(s.repo.Owned(ctx, email, s.listSize))
}

// Query ищет ссылки по подстроке. Пустой запрос находит все активные ссылки.
func (s *LinkService) Query(ctx context.Context, text string) ([]models.ListedLink, error) {
	return s.listed(s.repo.Query(ctx, strings.TrimSpace(text)))
}

func (s *LinkService) listed(recs []models.Record, err error) ([]models.ListedLink, error) {
	if err != nil {
		s.logger.WithError(err).Error("failed to list links")
		return nil, ErrUnknown
	}
	out := make([]models.ListedLink, len(recs))
	for i, rec := range recs {
		out[i] = rec.Listed()
	}
	return out, nil
}
