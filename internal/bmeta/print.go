package bmeta

import (
	"fmt"
	"io"
	"os"
)

const defaultBuildMeta = "N/A" // Значение по умолчанию

// Info метаданные сборки, проставляются через -ldflags.
type Info struct {
	Version string
	Date    string
	Commit  string
}

// orDefault подставляет N/A вместо пустых значений.
func (i Info) orDefault() Info {
	if i.Version == "" {
		i.Version = defaultBuildMeta
	}
	if i.Date == "" {
		i.Date = defaultBuildMeta
	}
	if i.Commit == "" {
		i.Commit = defaultBuildMeta
	}
	return i
}

// Fprint пишет версию, дату и комит сборки в w.
func Fprint(w io.Writer, info Info) {
	meta := info.orDefault()
	_, _ = fmt.Fprintf(w, "Build version: %s\n", meta.Version)
	_, _ = fmt.Fprintf(w, "Build date: %s\n", meta.Date)
	_, _ = fmt.Fprintf(w, "Build commit: %s\n", meta.Commit)
}

// Print Распечатывает версию, дату и комит сборки в stdout.
func Print(version, date, commit string) {
	Fprint(os.Stdout, Info{Version: version, Date: date, Commit: commit})
}
