// Package refresh решает, когда списки ссылок должны перезапрашиваться.
//
// Coordinator хранит токен последнего изменения. Токен меняется только после того, как
// изменяющая операция (создание, отключение) завершилась успешно. ListSurface перезапрашивает
// свой список один раз при первом показе и один раз на каждое новое значение токена.
package refresh

import (
	"sync"

	"github.com/fsdevblog/golinks/internal/linkclient"
)

// Token непрозрачное значение "набор ссылок мог измениться". Растет монотонно.
type Token uint64

// Coordinator единственный писатель токена обновления.
type Coordinator struct {
	mu     sync.RWMutex
	token  Token
	subs   map[int]func(Token)
	nextID int
}

// NewCoordinator создает координатор с нулевым токеном.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		subs: make(map[int]func(Token)),
	}
}

// Token возвращает текущее значение токена.
func (c *Coordinator) Token() Token {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Subscribe регистрирует наблюдателя изменений токена. Возвращает функцию отписки.
func (c *Coordinator) Subscribe(fn func(Token)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// Touch выпускает новый токен и оповещает подписчиков. Подписчики вызываются вне блокировки,
// поэтому могут читать Token и отписываться.
func (c *Coordinator) Touch() Token {
	c.mu.Lock()
	c.token++
	token := c.token
	subs := make([]func(Token), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(token)
	}
	return token
}

// Commit обновляет токен, если результат изменяющей операции успешен, и возвращает результат без изменений.
// nil координатор допустим: результат возвращается, токен не меняется.
func Commit[T any](c *Coordinator, result linkclient.Result[T]) linkclient.Result[T] {
	if c != nil && result.OK() {
		c.Touch()
	}
	return result
}
