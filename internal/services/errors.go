package services

import "errors"

var (
	ErrUnknown        = errors.New("[service]: unknown error")
	ErrRecordNotFound = errors.New("[service]: record not found")
	ErrLinkExists     = errors.New("link already exists")
	ErrInvalidName    = errors.New("name input is invalid")
	ErrReservedName   = errors.New("name is reserved")
	ErrInvalidPayload = errors.New("invalid payload")
)
