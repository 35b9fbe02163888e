// Package stubapp собирает тестовый сервер ссылок: хранилище в памяти, сервис, gin роутер и лимитер.
package stubapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	lmemory "github.com/ulule/limiter/v3/drivers/store/memory"
	lredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/fsdevblog/golinks/internal/config"
	"github.com/fsdevblog/golinks/internal/controllers"
	"github.com/fsdevblog/golinks/internal/controllers/middlewares"
	"github.com/fsdevblog/golinks/internal/db/memory"
	"github.com/fsdevblog/golinks/internal/repositories/memstore"
	"github.com/fsdevblog/golinks/internal/services"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 5 * time.Second
	limiterPrefix     = "golinks_stub"
)

type App struct {
	config config.StubConfig
	router *gin.Engine
	redis  *redis.Client
	Logger *logrus.Logger
}

// New создает приложение. Если задан RedisURL, счетчики лимитера хранятся в redis.
func New(conf config.StubConfig, logger *logrus.Logger) (*App, error) {
	rate, rateErr := limiter.NewRateFromFormatted(conf.RateLimit)
	if rateErr != nil {
		return nil, fmt.Errorf("parse rate limit `%s`: %w", conf.RateLimit, rateErr)
	}

	app := &App{config: conf, Logger: logger}

	store, storeErr := app.limiterStore()
	if storeErr != nil {
		return nil, storeErr
	}

	linkService := services.NewLinkService(
		memstore.NewLinkRepo(memory.NewMemStorage()),
		conf.ListSize,
		logger,
	)

	params := controllers.RouterParams{
		Links:     linkService,
		JWTSecret: []byte(conf.JWTSecret),
		RateLimit: middlewares.RateLimitMiddleware(store, rate),
		Logger:    logger,
	}
	if app.redis != nil {
		params.Conn = redisConn{client: app.redis}
	}
	app.router = controllers.SetupRouter(params)
	return app, nil
}

// Must вызывает панику если произошла ошибка.
func Must(a *App, err error) *App {
	if err != nil {
		panic(err)
	}
	return a
}

// Handler http обработчик приложения.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run запускает web сервер и останавливает его по SIGINT/SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.Serve(ctx)
}

// Serve обслуживает запросы до отмены ctx, затем корректно останавливает сервер.
func (a *App) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           a.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	a.Logger.WithField("address", a.config.ServerAddress).Info("Starting server")

	var serverErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown command received")
	case serverErr = <-errChan:
		a.Logger.WithError(serverErr).Error("router error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.Logger.WithError(err).Error("server shutdown error")
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.WithError(err).Error("redis close error")
		}
	}
	return serverErr
}

func (a *App) limiterStore() (limiter.Store, error) {
	if a.config.RedisURL == "" {
		return lmemory.NewStore(), nil
	}

	opts, err := redis.ParseURL(a.config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	a.redis = redis.NewClient(opts)

	store, err := lredis.NewStoreWithOptions(a.redis, limiter.StoreOptions{
		Prefix:   limiterPrefix,
		MaxRetry: 3, //nolint:mnd
	})
	if err != nil {
		_ = a.redis.Close()
		return nil, fmt.Errorf("create redis limiter store: %w", err)
	}
	return store, nil
}

type redisConn struct {
	client *redis.Client
}

func (r redisConn) CheckConnection(ctx context.Context) error {
	return r.client.Ping(ctx).Err() //nolint:wrapcheck
}
