package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/golinks/internal/controllers/middlewares"
)

// RouterParams зависимости роутера.
type RouterParams struct {
	Links     LinkStore
	Conn      ConnectionChecker // может быть nil
	JWTSecret []byte
	// RateLimit middleware лимита запросов. nil - без ограничений
	RateLimit gin.HandlerFunc
	Logger    *logrus.Logger
}

// SetupRouter собирает gin роутер тестового сервера ссылок.
//
// Маршруты:
//   - GET /api/popular, GET /api/recent, GET /api/owned, POST /api/query
//   - GET /api/ping
//   - POST|DELETE|GET /{name} через NoRoute, так как имя может содержать слеши
func SetupRouter(params RouterParams) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestIDMiddleware())
	r.Use(middlewares.LoggerMiddleware(params.Logger))
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.GzipMiddleware())
	if params.RateLimit != nil {
		r.Use(params.RateLimit)
	}
	r.Use(middlewares.OwnerMiddleware(params.JWTSecret))

	linksController := NewLinksController(params.Links)
	pingController := NewPingController(params.Conn)

	api := r.Group("/api")
	api.GET("/popular", linksController.Popular)
	api.GET("/recent", linksController.Recent)
	api.GET("/owned", linksController.Owned)
	api.POST("/query", linksController.Query)
	api.GET("/ping", pingController.Ping)

	r.NoRoute(linksController.Dispatch)
	r.NoMethod(func(ctx *gin.Context) {
		sendError(ctx, http.StatusMethodNotAllowed, "")
	})
	return r
}
