package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const DefaultRequestTimeout = 3 * time.Second

// ConnectionChecker проверяет внешнюю зависимость сервера, например redis лимитера.
type ConnectionChecker interface {
	CheckConnection(ctx context.Context) error
}

// PingController контроллер для проверки работоспособности сервиса.
type PingController struct {
	conn ConnectionChecker
}

// NewPingController создает PingController. conn может быть nil, тогда проверять нечего.
func NewPingController(conn ConnectionChecker) *PingController {
	return &PingController{conn: conn}
}

// Ping обрабатывает GET /api/ping.
//
// В случае успеха возвращает:
//   - HTTP 200 OK с телом "pong"
//
// В случае ошибки возвращает:
//   - HTTP 500 Internal Server Error
func (c *PingController) Ping(ctx *gin.Context) {
	if c.conn != nil {
		pingCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
		defer cancel()
		if err := c.conn.CheckConnection(pingCtx); err != nil {
			_ = ctx.Error(fmt.Errorf("ping error: %w", err))
			ctx.Status(http.StatusInternalServerError)
			return
		}
	}
	ctx.String(http.StatusOK, "pong")
}
