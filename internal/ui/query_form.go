package ui

import (
	"context"
	"strings"
	"sync"

	"github.com/fsdevblog/golinks/internal/linkclient"
	"github.com/fsdevblog/golinks/internal/models"
)

// QueryForm форма поиска. Результаты не зависят от токена обновления и живут до следующего поиска.
type QueryForm struct {
	api linkclient.API

	mu      sync.Mutex
	query   string
	results []models.ListedLink
	notice  Notice
}

// NewQueryForm создает форму поиска.
func NewQueryForm(api linkclient.API) *QueryForm {
	return &QueryForm{api: api, results: make([]models.ListedLink, 0)}
}

// Search выполняет поиск. Пустой запрос - ошибка валидации, запрос к сервису не делается.
func (q *QueryForm) Search(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return &ValidationError{Field: "query", Reason: "is required"}
	}

	res := q.api.Query(ctx, text)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.query = text
	q.results = res.Value()
	if res.OK() {
		q.notice = Notice{}
	} else {
		q.notice = Notice{Text: res.Message(), Failed: true}
	}
	return nil
}

// Query последний выполненный запрос.
func (q *QueryForm) Query() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.query
}

// Results результаты последнего поиска в том виде, в котором их вернул сервис.
func (q *QueryForm) Results() []models.ListedLink {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]models.ListedLink, len(q.results))
	copy(out, q.results)
	return out
}

// Notice сообщение об ошибке последнего поиска.
func (q *QueryForm) Notice() Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.notice
}
