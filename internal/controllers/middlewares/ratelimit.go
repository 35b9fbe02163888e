package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
)

// LimitExceededMessage тело ответа при превышении лимита.
const LimitExceededMessage = "Limit exceeded"

// RateLimitMiddleware ограничивает число запросов с одного IP. Счетчики живут в store.
//
// Параметры:
//   - store: хранилище счетчиков (память или redis)
//   - rate: лимит, например limiter.NewRateFromFormatted("600-M")
//
// Возвращает:
//   - gin.HandlerFunc: middleware, отвечающая 429 с текстом LimitExceededMessage
func RateLimitMiddleware(store limiter.Store, rate limiter.Rate) gin.HandlerFunc {
	return mgin.NewMiddleware(
		limiter.New(store, rate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			c.String(http.StatusTooManyRequests, LimitExceededMessage)
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			_ = c.Error(err)
			c.AbortWithStatus(http.StatusInternalServerError)
		}),
	)
}
