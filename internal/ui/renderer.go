package ui

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fsdevblog/golinks/internal/models"
	"github.com/fsdevblog/golinks/internal/refresh"
)

// Тексты пустых и промежуточных состояний.
const (
	TextNoLinks = "No links found"
	TextLoading = "Loading..."
)

// Renderer выводит поверхности в текстовом виде.
type Renderer struct {
	out io.Writer
}

// NewRenderer создает Renderer, пишущий в out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Header выводит заголовок приложения.
func (r *Renderer) Header() {
	r.printf("go/\nInternal URL shortener to provide quick and memorable URLs.\n\n")
}

// List выводит состояние списка.
func (r *Renderer) List(snap refresh.Snapshot) {
	r.printf("== %s ==\n", snap.Title)
	switch snap.State {
	case refresh.StateIdle, refresh.StateFetching:
		r.printf("%s\n", TextLoading)
	case refresh.StateFailed:
		r.printf("Error: %s\n", snap.Message)
	case refresh.StatePopulated:
		r.Links(snap.Links)
	}
}

// Links выводит ссылки таблицей или текст пустого списка.
func (r *Renderer) Links(links []models.ListedLink) {
	if len(links) == 0 {
		r.printf("%s\n", TextNoLinks)
		return
	}
	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0) //nolint:mnd
	for _, l := range links {
		_, _ = fmt.Fprintln(tw, NewLinkRow(l, nil, nil).Line())
	}
	_ = tw.Flush()
}

// Notice выводит сообщение формы. Пустое сообщение не выводится.
func (r *Renderer) Notice(n Notice) {
	if n.Text == "" {
		return
	}
	if n.Failed {
		r.printf("Error: %s\n", n.Text)
		return
	}
	r.printf("%s\n", n.Text)
}

func (r *Renderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}
