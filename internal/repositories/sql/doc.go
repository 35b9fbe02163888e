// Package sql предоставляет репозиторий снимков списков ссылок поверх gorm (SQLite или PostgreSQL).
//
// Ошибки gorm преобразуются в общие ошибки уровня репозитория с помощью ConvertErrorType:
//   - gorm.ErrDuplicatedKey -> repositories.ErrDuplicateKey
//   - gorm.ErrRecordNotFound -> repositories.ErrNotFound
//   - другие ошибки -> repositories.ErrUnknown
package sql
