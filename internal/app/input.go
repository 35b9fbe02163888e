package app

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

type lineResult struct {
	line string
	err  error
}

// lineReader читает ввод построчно в отдельной горутине, чтобы ожидание ввода прерывалось отменой контекста.
type lineReader struct {
	r     *bufio.Reader
	once  sync.Once
	lines chan lineResult
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r:     bufio.NewReader(r),
		lines: make(chan lineResult),
	}
}

// ReadLine возвращает следующую строку без перевода строки. После конца ввода всегда возвращает io.EOF.
func (l *lineReader) ReadLine(ctx context.Context) (string, error) {
	l.once.Do(func() { go l.loop() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-l.lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	}
}

func (l *lineReader) loop() {
	defer close(l.lines)
	for {
		line, err := l.r.ReadString('\n')
		if line != "" {
			l.lines <- lineResult{line: strings.TrimRight(line, "\r\n")}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				l.lines <- lineResult{err: err}
			}
			return
		}
	}
}
