// Package memstore хранит записи ссылок тестового сервера в памяти процесса.
//
// Отключенная запись остается в хранилище, но для чтения и списков считается отсутствующей,
// а её имя можно занять снова. Ошибки хранилища приводятся к repositories.ErrNotFound,
// repositories.ErrDuplicateKey и repositories.ErrUnknown.
package memstore
