package ui

import (
	"context"
	"fmt"

	"github.com/fsdevblog/golinks/internal/linkclient"
	"github.com/fsdevblog/golinks/internal/models"
	"github.com/fsdevblog/golinks/internal/refresh"
)

// LinkRow строка списка ссылок с действием отключения.
type LinkRow struct {
	link        models.ListedLink
	api         linkclient.API
	coordinator *refresh.Coordinator
}

// NewLinkRow создает строку для ссылки. coordinator может быть nil, тогда отключение не обновляет списки.
func NewLinkRow(link models.ListedLink, api linkclient.API, coordinator *refresh.Coordinator) *LinkRow {
	return &LinkRow{link: link, api: api, coordinator: coordinator}
}

// CopyText текст, который копируется в буфер обмена.
func (r *LinkRow) CopyText() string {
	return r.link.ShortName()
}

// Line строка для вывода в таблицу: короткое имя, URL, описание, просмотры.
func (r *LinkRow) Line() string {
	return fmt.Sprintf("%s\t%s\t%s\t%s views",
		r.link.ShortName(), r.link.URL, r.link.Description, FormatViews(r.link.Views))
}

// Disable отключает ссылку. Без подтверждения запрос не отправляется и возвращается пустое сообщение.
func (r *LinkRow) Disable(ctx context.Context, confirmed bool) Notice {
	if !confirmed {
		return Notice{}
	}
	res := refresh.Commit(r.coordinator, r.api.Disable(ctx, r.link.Name))
	if !res.OK() {
		return Notice{Text: res.Message(), Failed: true}
	}
	return Notice{Text: fmt.Sprintf("Link %s disabled", r.link.ShortName())}
}
