package store

import "errors"

// The store's error taxonomy. All of these are recoverable by the caller and
// map to 4xx responses in the API layer.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateUsername  = errors.New("username is already registered")
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrNotFound           = errors.New("record not found")
)
