package models

import "time"

// Link ссылка в том виде, в котором её создает клиент. Короткий адрес ссылки - `go/<Name>`.
type Link struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ShortName возвращает короткий адрес ссылки.
func (l Link) ShortName() string {
	return "go/" + l.Name
}

// ListedLink ссылка из списков и результатов поиска. Счетчик просмотров только для чтения.
type ListedLink struct {
	Link
	Views int `json:"views"`
}

// Record запись хранилища тестового сервиса ссылок.
type Record struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Views       int       `json:"views"`
	CreatedBy   string    `json:"created_by"`
	Disabled    bool      `json:"disabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Listed приводит запись к виду, который отдается в списках.
func (r Record) Listed() ListedLink {
	return ListedLink{
		Link: Link{
			URL:         r.URL,
			Name:        r.Name,
			Description: r.Description,
		},
		Views: r.Views,
	}
}
