package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrWeekNotFound          = errors.New("week not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
