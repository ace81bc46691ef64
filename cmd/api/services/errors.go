package services

import "errors"

var (
	// ErrNotFound means the requested resource does not exist or does not
	// belong to the caller.
	ErrNotFound = errors.New("resource not found")
	// ErrUserNotFound means the authenticated user has no row.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidInput wraps request validation failures.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotConfigured means a required upstream credential is missing.
	ErrNotConfigured = errors.New("configuration error")
)

// Upload is an in-memory uploaded file, decoded from a multipart form part.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}
