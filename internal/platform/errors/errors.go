package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInvalidURL        = errors.New("invalid url")
	ErrUnsupportedScheme = errors.New("unsupported url scheme")
	ErrEngineClosed      = errors.New("rendering engine closed")
	ErrStoreUnavailable  = errors.New("store unavailable")
)
