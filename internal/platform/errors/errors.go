package apperrors

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrInvalidImport = errors.New("invalid import document")
	ErrNotConfirmed  = errors.New("not confirmed")
	ErrCorruptData   = errors.New("corrupt stored data")
)
