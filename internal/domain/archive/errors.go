package archive

import "errors"

// Archive domain errors
var (
	ErrNotAuthenticated = errors.New("no authenticated user found")
	ErrArchiveNotFound  = errors.New("archive not found")
	ErrInvalidToken     = errors.New("invalid or missing token")
)
