package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/fsdevblog/golinks/internal/controllers/middlewares"
	"github.com/fsdevblog/golinks/internal/models"
	"github.com/fsdevblog/golinks/internal/services"
)

// QueryInput тело запроса поиска.
type QueryInput struct {
	Query string `json:"query"`
}

// LinksController обрабатывает /{name} и списки /api/*.
type LinksController struct {
	links LinkStore
}

func NewLinksController(links LinkStore) *LinksController {
	return &LinksController{links: links}
}

// Dispatch обрабатывает запросы к /{name}. Имя может содержать слеши, поэтому маршрут не описывается шаблоном gin.
// Запросы к неизвестным /api/* получают 404.
func (l *LinksController) Dispatch(ctx *gin.Context) {
	path := ctx.Request.URL.Path
	if path == "/api" || strings.HasPrefix(path, "/api/") {
		sendError(ctx, http.StatusNotFound, MessageNotFound)
		return
	}

	switch ctx.Request.Method {
	case http.MethodGet, http.MethodHead:
		l.Redirect(ctx)
	case http.MethodPost:
		l.Create(ctx)
	case http.MethodDelete:
		l.Disable(ctx)
	default:
		sendError(ctx, http.StatusMethodNotAllowed, "")
	}
}

// Create обрабатывает POST /{name} с JSON телом {url, description}.
//
// Возвращает:
//   - HTTP 201 Created без тела
//   - HTTP 400 {"error": "invalid payload"} или {"error": "name input is invalid"}
//   - HTTP 409 {"error": "link already exists"}
func (l *LinksController) Create(ctx *gin.Context) {
	body, readErr := io.ReadAll(ctx.Request.Body)
	if readErr != nil {
		_ = ctx.Error(readErr)
		sendError(ctx, http.StatusInternalServerError, MessageInternal)
		return
	}

	var link models.Link
	if err := json.Unmarshal(body, &link); err != nil {
		_ = ctx.Error(err)
		sendError(ctx, http.StatusBadRequest, MessageInvalidPayload)
		return
	}

	if _, err := l.links.Create(ctx, ctx.Request.URL.Path, link, ctx.GetString(middlewares.OwnerEmailKey)); err != nil {
		l.handleError(ctx, err)
		return
	}
	ctx.Status(http.StatusCreated)
}

// Disable обрабатывает DELETE /{name}. Отвечает 202 Accepted.
func (l *LinksController) Disable(ctx *gin.Context) {
	if err := l.links.Disable(ctx, ctx.Request.URL.Path); err != nil {
		l.handleError(ctx, err)
		return
	}
	ctx.Status(http.StatusAccepted)
}

// Redirect обрабатывает GET /{name}: засчитывает просмотр и перенаправляет на ссылку (302).
func (l *LinksController) Redirect(ctx *gin.Context) {
	rec, err := l.links.Resolve(ctx, ctx.Request.URL.Path)
	if err != nil {
		l.handleError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, rec.URL)
}

// Popular обрабатывает GET /api/popular.
func (l *LinksController) Popular(ctx *gin.Context) {
	l.sendList(ctx)(l.links.Popular(ctx))
}

// Recent обрабатывает GET /api/recent.
func (l *LinksController) Recent(ctx *gin.Context) {
	l.sendList(ctx)(l.links.Recent(ctx))
}

// Owned обрабатывает GET /api/owned. Без токена владельца отвечает 401.
func (l *LinksController) Owned(ctx *gin.Context) {
	email := ctx.GetString(middlewares.OwnerEmailKey)
	if email == "" {
		sendError(ctx, http.StatusUnauthorized, MessageUnauthorized)
		return
	}
	l.sendList(ctx)(l.links.Owned(ctx, email))
}

// Query обрабатывает POST /api/query с телом {"query": "..."}.
func (l *LinksController) Query(ctx *gin.Context) {
	body, readErr := io.ReadAll(ctx.Request.Body)
	if readErr != nil {
		_ = ctx.Error(readErr)
		sendError(ctx, http.StatusBadRequest, MessageBadRequest)
		return
	}
	var input QueryInput
	if err := json.Unmarshal(body, &input); err != nil {
		_ = ctx.Error(err)
		sendError(ctx, http.StatusBadRequest, MessageBadRequest)
		return
	}
	l.sendList(ctx)(l.links.Query(ctx, input.Query))
}

func (l *LinksController) sendList(ctx *gin.Context) func([]models.ListedLink, error) {
	return func(links []models.ListedLink, err error) {
		if err != nil {
			l.handleError(ctx, err)
			return
		}
		if links == nil {
			links = make([]models.ListedLink, 0)
		}
		sendJSON(ctx, http.StatusOK, links)
	}
}

// handleError переводит ошибку сервиса в HTTP ответ.
func (l *LinksController) handleError(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
	switch {
	case errors.Is(err, services.ErrInvalidName):
		sendError(ctx, http.StatusBadRequest, MessageInvalidName)
	case errors.Is(err, services.ErrInvalidPayload):
		sendError(ctx, http.StatusBadRequest, MessageInvalidPayload)
	case errors.Is(err, services.ErrReservedName):
		sendError(ctx, http.StatusForbidden, "")
	case errors.Is(err, services.ErrLinkExists):
		sendError(ctx, http.StatusConflict, MessageExists)
	case errors.Is(err, services.ErrRecordNotFound):
		sendError(ctx, http.StatusNotFound, MessageNotFound)
	default:
		sendError(ctx, http.StatusInternalServerError, MessageInternal)
	}
}
