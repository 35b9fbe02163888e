package linkclient

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/golinks/internal/models"
)

// Сообщения об ошибках, которые видит пользователь.
const (
	MessageTransport     = "Failed to communicate with server, please try your request again"
	MessageRequestFailed = "request failed"
	MessageDecode        = "Failed to read server response"
)

// DefaultTimeout таймаут запроса по умолчанию.
const DefaultTimeout = 15 * time.Second

// RequestIDHeader заголовок с идентификатором запроса.
const RequestIDHeader = "X-Request-ID"

// Пути API сервиса ссылок.
const (
	pathPopular = "/api/popular"
	pathRecent  = "/api/recent"
	pathOwned   = "/api/owned"
	pathQuery   = "/api/query"
)

// Config настройки клиента.
type Config struct {
	BaseAddress *url.URL      // Адрес сервиса ссылок
	Timeout     time.Duration // Таймаут одного запроса
	AuthToken   string        // Bearer токен, если задан
}

// Options дополнительные настройки клиента.
type Options struct {
	Logger     *logrus.Logger
	HTTPClient *http.Client
}

// Client клиент API сервиса ссылок. Каждый метод делает ровно один HTTP запрос и никогда не возвращает
// ошибку: любой исход приводится к Result.
type Client struct {
	rest   *resty.Client
	logger *logrus.Entry
}

// queryRequest тело запроса поиска.
type queryRequest struct {
	Query string `json:"query"`
}

// errorResponse тело ответа сервиса с ошибкой.
type errorResponse struct {
	Error string `json:"error"`
}

// New создает клиент API.
//
// Параметры:
//   - cfg: адрес сервиса, таймаут и токен
//   - opts: функции для настройки логгера и http клиента
//
// Возвращает:
//   - *Client: готовый к работе клиент
func New(cfg Config, opts ...func(*Options)) *Client {
	options := Options{
		Logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	var rest *resty.Client
	if options.HTTPClient != nil {
		rest = resty.NewWithClient(options.HTTPClient)
	} else {
		rest = resty.New()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger := options.Logger.WithField("module", "linkclient")

	rest.SetTimeout(timeout).
		SetRetryCount(0).
		SetLogger(logger).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetHeader("Accept", "application/json")

	if cfg.BaseAddress != nil {
		rest.SetBaseURL(strings.TrimRight(cfg.BaseAddress.String(), "/"))
	}
	if cfg.AuthToken != "" {
		rest.SetAuthToken(cfg.AuthToken)
	}

	rest.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		r.SetHeader(RequestIDHeader, uuid.NewString())
		return nil
	})
	rest.OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
		logger.WithFields(logrus.Fields{
			"method":    r.Request.Method,
			"URI":       r.Request.URL,
			"status":    r.StatusCode(),
			"latency":   r.Time().String(),
			"requestID": r.Request.Header.Get(RequestIDHeader),
		}).Debug("Response received")
		return nil
	})

	return &Client{
		rest:   rest,
		logger: logger,
	}
}

// Create создает ссылку. POST /{name} с JSON телом ссылки.
func (c *Client) Create(ctx context.Context, link models.Link) Result[Done] {
	req := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(link)

	return doAction(c, req, http.MethodPost, namePath(link.Name))
}

// Disable отключает ссылку. DELETE /{name}.
func (c *Client) Disable(ctx context.Context, name string) Result[Done] {
	return doAction(c, c.rest.R().SetContext(ctx), http.MethodDelete, namePath(name))
}

// ListPopular возвращает популярные ссылки.
func (c *Client) ListPopular(ctx context.Context) Result[[]models.ListedLink] {
	return doList(c, c.rest.R().SetContext(ctx), http.MethodGet, pathPopular)
}

// ListRecent возвращает недавно созданные ссылки.
func (c *Client) ListRecent(ctx context.Context) Result[[]models.ListedLink] {
	return doList(c, c.rest.R().SetContext(ctx), http.MethodGet, pathRecent)
}

// ListOwned возвращает ссылки текущего пользователя.
func (c *Client) ListOwned(ctx context.Context) Result[[]models.ListedLink] {
	return doList(c, c.rest.R().SetContext(ctx), http.MethodGet, pathOwned)
}

// Query ищет ссылки по имени и описанию.
func (c *Client) Query(ctx context.Context, text string) Result[[]models.ListedLink] {
	req := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(queryRequest{Query: text})

	return doList(c, req, http.MethodPost, pathQuery)
}

func doAction(c *Client, req *resty.Request, method, path string) Result[Done] {
	if _, failure, ok := c.execute(req, method, path); !ok {
		return Err(Done{}, failure.Kind, failure.Status, failure.Message)
	}
	return Ok(Done{})
}

func doList(c *Client, req *resty.Request, method, path string) Result[[]models.ListedLink] {
	empty := make([]models.ListedLink, 0)

	resp, failure, ok := c.execute(req, method, path)
	if !ok {
		return Err(empty, failure.Kind, failure.Status, failure.Message)
	}

	links, err := decodeLinks(resp.Body())
	if err != nil {
		c.logger.WithError(err).
			WithField("URI", path).
			Warn("Decode response failed")
		return Err(empty, FailureDecode, 0, MessageDecode)
	}
	return Ok(links)
}

// execute выполняет запрос и классифицирует ошибки транспорта и статуса.
func (c *Client) execute(req *resty.Request, method, path string) (*resty.Response, *Failure, bool) {
	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.WithError(err).
			WithFields(logrus.Fields{"method": method, "URI": path}).
			Warn("Request failed")
		return nil, &Failure{Kind: FailureTransport, Message: MessageTransport}, false
	}

	if !resp.IsSuccess() {
		message := statusMessage(resp.StatusCode(), resp.Body())
		c.logger.WithFields(logrus.Fields{
			"method": method,
			"URI":    path,
			"status": resp.StatusCode(),
			"error":  message,
		}).Warn("Server returned error status")
		return resp, &Failure{Kind: FailureStatus, Status: resp.StatusCode(), Message: message}, false
	}
	return resp, nil, true
}

// statusMessage извлекает сообщение из тела ответа с ошибкой.
// Порядок: поле `error` JSON тела, затем текст статуса, затем общее сообщение, если тела нет.
func statusMessage(code int, body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return MessageRequestFailed
	}

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}

	if text := http.StatusText(code); text != "" {
		return text
	}
	return MessageRequestFailed
}

// decodeLinks разбирает список ссылок. Пустое тело и `null` - пустой список.
func decodeLinks(body []byte) ([]models.ListedLink, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return make([]models.ListedLink, 0), nil
	}

	var links []models.ListedLink
	if err := json.Unmarshal(body, &links); err != nil {
		return nil, err //nolint:wrapcheck
	}
	if links == nil {
		links = make([]models.ListedLink, 0)
	}
	return links, nil
}

// namePath строит путь `/{name}`, экранируя каждый сегмент имени отдельно.
func namePath(name string) string {
	segments := strings.Split(strings.Trim(name, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(segments, "/")
}
