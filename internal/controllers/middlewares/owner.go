package middlewares

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/golinks/internal/tokens"
)

const (
	OwnerEmailKey   = "ownerEmail"
	OwnerCookieName = "token"
)

// OwnerMiddleware проверяет токен владельца из заголовка Authorization (Bearer) или cookie `token`
// и кладет почту владельца в контекст gin. Запрос без токена или с плохим токеном проходит дальше анонимно.
func OwnerMiddleware(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := tokens.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			cookie, err := c.Cookie(OwnerCookieName)
			if err != nil || cookie == "" {
				c.Next()
				return
			}
			raw = cookie
		}

		email, err := tokens.ValidateOwnerJWT(raw, jwtSecret)
		if err != nil {
			_ = c.Error(fmt.Errorf("owner middleware: %w", err))
			c.Next()
			return
		}
		c.Set(OwnerEmailKey, email)
		c.Next()
	}
}
