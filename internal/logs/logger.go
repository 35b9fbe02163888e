package logs

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// EncodingType определяет формат вывода логов.
type EncodingType string

// LevelType определяет уровень логирования.
type LevelType string

// EncodingTypeText Форматирование для консоли.
// EncodingTypeJSON Форматирование в JSON.
const (
	EncodingTypeText EncodingType = "text"
	EncodingTypeJSON EncodingType = "json"
)

const (
	LevelTypeDebug   LevelType = "debug"
	LevelTypeInfo    LevelType = "info"
	LevelTypeWarning LevelType = "warning"
	LevelTypeError   LevelType = "error"
)

// EnvName переменная окружения, по которой определяется продакшн окружение.
const EnvName = "GOLINKS_ENV"

// LoggerOptions настройки логгера.
type LoggerOptions struct {
	Level    LevelType    // Уровень логирования
	Encoding EncodingType // Формат вывода
}

// New создает новый логгер с указанными настройками.
// По умолчанию в продакшн окружении логи пишутся в JSON с уровнем info, иначе текстом с уровнем debug.
//
// Параметры:
//   - out: куда писать логи
//   - opts: функции для настройки логгера
//
// Возвращает:
//   - *logrus.Logger: настроенный логгер
//   - error: ошибка разбора уровня логирования
func New(out io.Writer, opts ...func(*LoggerOptions)) (*logrus.Logger, error) {
	options := LoggerOptions{
		Level:    LevelTypeDebug,
		Encoding: EncodingTypeText,
	}
	if os.Getenv(EnvName) == "production" {
		options.Level = LevelTypeInfo
		options.Encoding = EncodingTypeJSON
	}

	for _, opt := range opts {
		opt(&options)
	}

	lvl, err := logrus.ParseLevel(string(options.Level))
	if err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)

	switch options.Encoding {
	case EncodingTypeJSON:
		logger.SetFormatter(new(logrus.JSONFormatter))
	case EncodingTypeText:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown encoding `%s`", options.Encoding)
	}

	return logger, nil
}

// MustNew аналогичен New, но в случае ошибки вызывает панику.
func MustNew(out io.Writer, opts ...func(*LoggerOptions)) *logrus.Logger {
	log, err := New(out, opts...)
	if err != nil {
		panic(err)
	}
	return log
}

// WithLevel опция, задающая уровень логирования. Пустое значение игнорируется.
func WithLevel(level string) func(*LoggerOptions) {
	return func(o *LoggerOptions) {
		if level != "" {
			o.Level = LevelType(level)
		}
	}
}

// Discard логгер, который никуда не пишет. Используется в тестах.
func Discard() *logrus.Logger {
	return MustNew(io.Discard, func(o *LoggerOptions) {
		o.Level = LevelTypeError
	})
}
