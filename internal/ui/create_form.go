package ui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/golinks/internal/linkclient"
	"github.com/fsdevblog/golinks/internal/models"
	"github.com/fsdevblog/golinks/internal/refresh"
)

// ErrInFlight форма уже отправляется, повторная отправка запрещена.
var ErrInFlight = errors.New("request already in progress")

// ValidationError ошибка заполнения поля формы.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Notice сообщение формы для пользователя.
type Notice struct {
	Text   string
	Failed bool
}

// CreateForm форма создания ссылки.
type CreateForm struct {
	api         linkclient.API
	coordinator *refresh.Coordinator
	logger      *logrus.Entry
	onSuccess   func(models.Link)

	inFlight atomic.Bool

	mu     sync.Mutex
	fields models.Link
	notice Notice
}

// CreateFormOptions настройки формы.
type CreateFormOptions struct {
	Logger *logrus.Logger
	// OnSuccess вызывается после успешного создания, например чтобы закрыть модальное окно.
	OnSuccess func(models.Link)
}

// NewCreateForm создает форму, которая после успешного создания обновляет токен координатора.
// Без координатора (nil) форма работает, но списки не перезапрашиваются.
func NewCreateForm(
	api linkclient.API,
	coordinator *refresh.Coordinator,
	opts ...func(*CreateFormOptions),
) *CreateForm {
	options := CreateFormOptions{Logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&options)
	}
	return &CreateForm{
		api:         api,
		coordinator: coordinator,
		logger:      options.Logger.WithField("module", "ui/create_form"),
		onSuccess:   options.OnSuccess,
	}
}

// Fill заполняет поля формы.
func (f *CreateForm) Fill(link models.Link) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = link
}

// Fields возвращает текущие значения полей.
func (f *CreateForm) Fields() models.Link {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Notice возвращает последнее сообщение формы.
func (f *CreateForm) Notice() Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notice
}

// Dismiss скрывает сообщение формы.
func (f *CreateForm) Dismiss() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notice = Notice{}
}

// Busy сообщает, отправляется ли форма сейчас.
func (f *CreateForm) Busy() bool {
	return f.inFlight.Load()
}

// Validate проверяет, что все поля заполнены и URL абсолютный.
func (f *CreateForm) Validate() error {
	return validateLink(f.Fields())
}

// Submit отправляет форму. Возвращает ошибку только для локальных проблем (валидация, повторная отправка);
// исход запроса к сервису доступен через Notice.
func (f *CreateForm) Submit(ctx context.Context) error {
	link := f.Fields()
	link.Name = strings.TrimSpace(link.Name)
	link.URL = strings.TrimSpace(link.URL)
	link.Description = strings.TrimSpace(link.Description)

	if err := validateLink(link); err != nil {
		return err
	}
	if !f.inFlight.CompareAndSwap(false, true) {
		return ErrInFlight
	}
	defer f.inFlight.Store(false)

	f.Dismiss()
	res := refresh.Commit(f.coordinator, f.api.Create(ctx, link))

	f.mu.Lock()
	if !res.OK() {
		f.notice = Notice{Text: res.Message(), Failed: true}
		f.mu.Unlock()
		f.logger.WithField("error", res.Message()).Debug("Create link failed")
		return nil
	}
	f.notice = Notice{Text: fmt.Sprintf("Link %s created successfully!", link.ShortName())}
	f.fields = models.Link{}
	f.mu.Unlock()

	if f.onSuccess != nil {
		f.onSuccess(link)
	}
	return nil
}

func validateLink(link models.Link) error {
	if strings.TrimSpace(link.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if strings.TrimSpace(link.URL) == "" {
		return &ValidationError{Field: "url", Reason: "is required"}
	}
	if strings.TrimSpace(link.Description) == "" {
		return &ValidationError{Field: "description", Reason: "is required"}
	}
	if err := validateURL(strings.TrimSpace(link.URL)); err != nil {
		return &ValidationError{Field: "url", Reason: err.Error()}
	}
	return nil
}

// validateURL проверяет, что строка - абсолютный http(s) URL.
func validateURL(rawURL string) error {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return errors.New("has invalid format")
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.New("must have http or https scheme")
	}
	if parsedURL.Host == "" {
		return errors.New("must have a host")
	}
	return nil
}
