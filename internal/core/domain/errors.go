package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidInput       = errors.New("invalid input")

	// Bulk upload admission and parse failures.
	ErrNoFile       = errors.New("no file uploaded")
	ErrNotCSV       = errors.New("file must be a CSV")
	ErrMalformedCSV = errors.New("invalid CSV format")
)
