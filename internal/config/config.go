package config

import (
	"flag"
	"io"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Ограничения таймаута запроса к сервису ссылок.
const (
	DefaultTimeout = 15 * time.Second
	MinTimeout     = 10 * time.Second
	MaxTimeout     = 30 * time.Second
)

// DefaultBaseAddress адрес сервиса ссылок при локальной разработке.
const DefaultBaseAddress = "http://localhost:8080"

// EnvFileVar переменная окружения с путем к .env файлу.
const EnvFileVar = "GOLINKS_ENV_FILE"

// ClientConfig настройки клиента командной строки.
type ClientConfig struct {
	// Адрес сервиса ссылок
	BaseAddress *url.URL `env:"GOLINKS_BASE_ADDRESS"`
	// Таймаут одного запроса
	Timeout time.Duration `env:"GOLINKS_TIMEOUT"`
	// Bearer токен пользователя
	AuthToken string `env:"GOLINKS_TOKEN"`
	// Уровень логирования
	LogLevel string `env:"GOLINKS_LOG_LEVEL"`
	// Куда выгружать снимки списков (sqlite путь или postgres DSN)
	SnapshotDSN string `env:"GOLINKS_SNAPSHOT_DSN"`
}

// LoadClientConfig читает .env, переменные окружения и флаги. Значения из окружения важнее флагов.
//
// Параметры:
//   - args: аргументы командной строки без имени программы
//
// Возвращает:
//   - *ClientConfig: итоговая конфигурация
//   - []string: аргументы после глобальных флагов (подкоманда и её флаги)
//   - error: ошибка разбора или проверки
func LoadClientConfig(args []string) (*ClientConfig, []string, error) {
	if err := loadDotEnv(); err != nil {
		return nil, nil, err
	}

	var envConfig ClientConfig
	if err := env.Parse(&envConfig); err != nil {
		return nil, nil, errors.Wrap(err, "parse ENV config error")
	}

	flagsConfig, rest, err := parseClientFlags(args)
	if err != nil {
		return nil, nil, err
	}

	conf := &ClientConfig{
		BaseAddress: defaultIfBlank(envConfig.BaseAddress, flagsConfig.BaseAddress),
		Timeout:     defaultIfBlank(envConfig.Timeout, flagsConfig.Timeout),
		AuthToken:   defaultIfBlank(envConfig.AuthToken, flagsConfig.AuthToken),
		LogLevel:    defaultIfBlank(envConfig.LogLevel, flagsConfig.LogLevel),
		SnapshotDSN: defaultIfBlank(envConfig.SnapshotDSN, flagsConfig.SnapshotDSN),
	}
	if err := conf.Validate(); err != nil {
		return nil, nil, err
	}
	return conf, rest, nil
}

// MustLoadClientConfig аналогичен LoadClientConfig, но паникует при ошибке.
func MustLoadClientConfig(args []string) (*ClientConfig, []string) {
	conf, rest, err := LoadClientConfig(args)
	if err != nil {
		panic(err)
	}
	return conf, rest
}

// Validate проверяет адрес сервиса и таймаут.
func (c *ClientConfig) Validate() error {
	if c.BaseAddress == nil {
		return errors.New("base address is required")
	}
	if c.BaseAddress.Scheme != "http" && c.BaseAddress.Scheme != "https" {
		return errors.Errorf("base address `%s` must have http or https scheme", c.BaseAddress)
	}
	if c.BaseAddress.Host == "" {
		return errors.Errorf("base address `%s` must have a host", c.BaseAddress)
	}
	if c.Timeout < MinTimeout || c.Timeout > MaxTimeout {
		return errors.Errorf("timeout %s is out of range [%s, %s]", c.Timeout, MinTimeout, MaxTimeout)
	}
	return nil
}

// parseClientFlags парсит глобальные флаги клиента.
func parseClientFlags(args []string) (*ClientConfig, []string, error) {
	var flagsConfig ClientConfig

	fs := flag.NewFlagSet("golinks", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	defaultBase, _ := url.Parse(DefaultBaseAddress)
	flagsConfig.BaseAddress = defaultBase
	fs.Func("b", "Адрес сервиса ссылок (по умолчанию "+DefaultBaseAddress+")", func(rawURL string) error {
		parsedURL, err := url.ParseRequestURI(rawURL)
		if err != nil {
			return errors.Wrap(err, "failed to parse base address")
		}
		flagsConfig.BaseAddress = parsedURL
		return nil
	})
	fs.DurationVar(&flagsConfig.Timeout, "t", DefaultTimeout, "Таймаут запроса")
	fs.StringVar(&flagsConfig.AuthToken, "token", "", "Bearer токен")
	fs.StringVar(&flagsConfig.LogLevel, "log-level", "", "Уровень логирования")
	fs.StringVar(&flagsConfig.SnapshotDSN, "snapshot-dsn", "", "Хранилище снимков: путь sqlite или postgres DSN")

	if err := fs.Parse(args); err != nil {
		return nil, nil, errors.Wrap(err, "parse flags error")
	}
	return &flagsConfig, fs.Args(), nil
}

// loadDotEnv загружает переменные из .env файла, если он есть. Уже заданные переменные не перезаписываются.
func loadDotEnv() error {
	path := os.Getenv(EnvFileVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "load env file `%s`", path)
	}
	return nil
}

// defaultIfBlank возвращает defaultValue, если value нулевое.
func defaultIfBlank[T comparable](value T, defaultValue T) T {
	var zero T
	if value == zero {
		return defaultValue
	}
	return value
}

// Значения по умолчанию тестового сервера ссылок.
const (
	DefaultStubAddress   = ":8080"
	DefaultStubRateLimit = "600-M"
	DefaultStubListSize  = 10
)

// StubConfig настройки тестового сервера ссылок.
type StubConfig struct {
	// Адрес, на котором слушает сервер
	ServerAddress string `env:"STUB_ADDRESS"`
	// Секрет подписи токенов владельца
	JWTSecret string `env:"STUB_JWT_SECRET"`
	// Лимит запросов в формате ulule/limiter, например 600-M
	RateLimit string `env:"STUB_RATE_LIMIT"`
	// Redis для хранения счетчиков лимитера. Пусто - счетчики в памяти
	RedisURL string `env:"STUB_REDIS_URL"`
	// Размер списков popular/recent/owned
	ListSize int `env:"STUB_LIST_SIZE"`
	// Уровень логирования
	LogLevel string `env:"STUB_LOG_LEVEL"`
}

// LoadStubConfig читает конфигурацию тестового сервера из .env, окружения и флагов.
func LoadStubConfig(args []string) (*StubConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	var envConfig StubConfig
	if err := env.Parse(&envConfig); err != nil {
		return nil, errors.Wrap(err, "parse ENV config error")
	}

	var flagsConfig StubConfig
	fs := flag.NewFlagSet("linkstub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&flagsConfig.ServerAddress, "a", DefaultStubAddress, "Адрес сервера")
	fs.StringVar(&flagsConfig.JWTSecret, "jwt-secret", "", "Секрет подписи токенов")
	fs.StringVar(&flagsConfig.RateLimit, "rate", DefaultStubRateLimit, "Лимит запросов")
	fs.StringVar(&flagsConfig.RedisURL, "redis", "", "Redis URL для лимитера")
	fs.IntVar(&flagsConfig.ListSize, "list-size", DefaultStubListSize, "Размер списков")
	fs.StringVar(&flagsConfig.LogLevel, "log-level", "", "Уровень логирования")
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "parse flags error")
	}

	conf := &StubConfig{
		ServerAddress: defaultIfBlank(envConfig.ServerAddress, flagsConfig.ServerAddress),
		JWTSecret:     defaultIfBlank(envConfig.JWTSecret, flagsConfig.JWTSecret),
		RateLimit:     defaultIfBlank(envConfig.RateLimit, flagsConfig.RateLimit),
		RedisURL:      defaultIfBlank(envConfig.RedisURL, flagsConfig.RedisURL),
		ListSize:      defaultIfBlank(envConfig.ListSize, flagsConfig.ListSize),
		LogLevel:      defaultIfBlank(envConfig.LogLevel, flagsConfig.LogLevel),
	}
	if conf.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if conf.ListSize <= 0 {
		return nil, errors.Errorf("list size must be positive, got %d", conf.ListSize)
	}
	return conf, nil
}
