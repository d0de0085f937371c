package domain

import "errors"

var (
	ErrValidation     = errors.New("invalid input")
	ErrDuplicateUser  = errors.New("username already taken")
	ErrAuthentication = errors.New("invalid username or password")

	// ErrStoreRead and ErrStoreWrite wrap persistence failures so callers can
	// tell them apart from input errors with errors.Is.
	ErrStoreRead  = errors.New("store read failed")
	ErrStoreWrite = errors.New("store write failed")

	ErrIssueNotFound   = errors.New("issue not found")
	ErrForbidden       = errors.New("access forbidden")
	ErrSessionNotFound = errors.New("session not found")
)
