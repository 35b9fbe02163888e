package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// Тексты ошибок, которые видит клиент.
const (
	MessageNotFound       = "not found"
	MessageInternal       = "internal server error"
	MessageInvalidPayload = "invalid payload"
	MessageBadRequest     = "bad request"
	MessageExists         = "link already exists"
	MessageInvalidName    = "name input is invalid"
	MessageUnauthorized   = "missing authentication token"
)

// ErrorResponse тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error,omitempty"`
}

// sendError отвечает кодом code. Пустое сообщение отправляется без тела.
func sendError(ctx *gin.Context, code int, message string) {
	if message == "" {
		ctx.AbortWithStatus(code)
		return
	}
	sendJSON(ctx, code, ErrorResponse{Error: message})
	ctx.Abort()
}

// sendJSON сериализует v через goccy/go-json.
func sendJSON(ctx *gin.Context, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		_ = ctx.Error(err)
		ctx.Status(http.StatusInternalServerError)
		return
	}
	ctx.Data(code, "application/json; charset=utf-8", body)
}
